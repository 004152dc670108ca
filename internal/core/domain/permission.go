package domain

// Resource is a category of protected object. Capability checks evaluate the
// category, never a specific instance.
type Resource string

const (
	ResourceBoard  Resource = "board"
	ResourceCard   Resource = "card"
	ResourceUser   Resource = "user"
	ResourceConfig Resource = "config"
)

// Operation is an atomic capability checked against a resource kind.
// OpAdmin designates resource-wide administrative actions and is distinct
// from OpDelete: a role may hold one without the other.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpAdmin  Operation = "admin"
)

// Resources and Operations enumerate the closed sets, in declaration order.
var (
	Resources  = []Resource{ResourceBoard, ResourceCard, ResourceUser, ResourceConfig}
	Operations = []Operation{OpCreate, OpRead, OpUpdate, OpDelete, OpAdmin}
)

type permissionKey struct {
	role     Role
	resource Resource
}

// PermissionMatrix maps (role, resource) to the set of allowed operations.
// It is built once at startup, shared read-only, and never mutated; absence
// of an entry means deny.
type PermissionMatrix struct {
	grants map[permissionKey]map[Operation]struct{}
}

// Allows reports whether role may perform op on resource. Unknown roles,
// resources and operations all resolve to deny.
func (m *PermissionMatrix) Allows(role Role, resource Resource, op Operation) bool {
	ops, ok := m.grants[permissionKey{role: role, resource: resource}]
	if !ok {
		return false
	}
	_, ok = ops[op]
	return ok
}

// NewPermissionMatrix builds a matrix from explicit grants. Input maps are
// copied so later mutation of the argument cannot leak into the matrix.
func NewPermissionMatrix(grants map[Role]map[Resource][]Operation) *PermissionMatrix {
	m := &PermissionMatrix{grants: make(map[permissionKey]map[Operation]struct{})}
	for role, byResource := range grants {
		for resource, ops := range byResource {
			set := make(map[Operation]struct{}, len(ops))
			for _, op := range ops {
				set[op] = struct{}{}
			}
			m.grants[permissionKey{role: role, resource: resource}] = set
		}
	}
	return m
}

// DefaultPermissionMatrix is the engine's static capability table.
//
//	admin: every operation on every resource.
//	user:  full CRUD on boards and cards, read+update on its own user record,
//	       read-only config.
//	agent: read boards, read/create/update cards (automation principals file
//	       card activity but never manage boards or users).
func DefaultPermissionMatrix() *PermissionMatrix {
	allOps := []Operation{OpCreate, OpRead, OpUpdate, OpDelete, OpAdmin}
	crud := []Operation{OpCreate, OpRead, OpUpdate, OpDelete}

	return NewPermissionMatrix(map[Role]map[Resource][]Operation{
		RoleAdmin: {
			ResourceBoard:  allOps,
			ResourceCard:   allOps,
			ResourceUser:   allOps,
			ResourceConfig: allOps,
		},
		RoleUser: {
			ResourceBoard:  crud,
			ResourceCard:   crud,
			ResourceUser:   {OpRead, OpUpdate},
			ResourceConfig: {OpRead},
		},
		RoleAgent: {
			ResourceBoard: {OpRead},
			ResourceCard:  {OpCreate, OpRead, OpUpdate},
		},
	})
}
