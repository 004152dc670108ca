package domain

import "testing"

func TestPermissionMatrix_Totality(t *testing.T) {
	m := DefaultPermissionMatrix()
	roles := []Role{RoleAdmin, RoleUser, RoleAgent}

	// Every tuple in the closed enums must resolve to a defined boolean.
	for _, role := range roles {
		for _, resource := range Resources {
			for _, op := range Operations {
				_ = m.Allows(role, resource, op)
			}
		}
	}
}

func TestPermissionMatrix_AdminAllowsEverything(t *testing.T) {
	m := DefaultPermissionMatrix()
	for _, resource := range Resources {
		for _, op := range Operations {
			if !m.Allows(RoleAdmin, resource, op) {
				t.Fatalf("admin denied %s on %s", op, resource)
			}
		}
	}
}

func TestPermissionMatrix_UnknownDenies(t *testing.T) {
	m := DefaultPermissionMatrix()
	if m.Allows("superuser", ResourceBoard, OpRead) {
		t.Fatalf("unknown role must deny")
	}
	if m.Allows(RoleUser, "telemetry", OpRead) {
		t.Fatalf("unknown resource must deny")
	}
	if m.Allows(RoleUser, ResourceBoard, "export") {
		t.Fatalf("unknown operation must deny")
	}
}

func TestPermissionMatrix_DeleteDistinctFromAdmin(t *testing.T) {
	m := DefaultPermissionMatrix()
	if !m.Allows(RoleUser, ResourceBoard, OpDelete) {
		t.Fatalf("user should hold delete on board")
	}
	if m.Allows(RoleUser, ResourceBoard, OpAdmin) {
		t.Fatalf("delete must not imply admin")
	}
}

func TestPermissionMatrix_AgentScope(t *testing.T) {
	m := DefaultPermissionMatrix()
	cases := []struct {
		resource Resource
		op       Operation
		want     bool
	}{
		{ResourceBoard, OpRead, true},
		{ResourceBoard, OpCreate, false},
		{ResourceCard, OpCreate, true},
		{ResourceCard, OpUpdate, true},
		{ResourceCard, OpDelete, false},
		{ResourceUser, OpRead, false},
		{ResourceConfig, OpRead, false},
	}
	for _, tc := range cases {
		if got := m.Allows(RoleAgent, tc.resource, tc.op); got != tc.want {
			t.Fatalf("agent %s on %s: got %v, want %v", tc.op, tc.resource, got, tc.want)
		}
	}
}
