package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("Failed to create authz service: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzService(t)

	if err := svc.GrantRolePolicy("order_support", "/admin/orders/:id/status", "PUT"); err != nil {
		t.Fatalf("GrantRolePolicy failed: %v", err)
	}
	if err := svc.SetAdminRoles(7, []string{"order_support"}); err != nil {
		t.Fatalf("SetAdminRoles failed: %v", err)
	}

	// keyMatch2 resolves :id params against concrete and templated paths.
	for _, obj := range []string{"/admin/orders/42/status", "/admin/orders/:id/status", "/api/v1/admin/orders/42/status"} {
		ok, err := svc.EnforceAdmin(7, obj, "PUT")
		if err != nil {
			t.Fatalf("EnforceAdmin(%s) failed: %v", obj, err)
		}
		if !ok {
			t.Fatalf("EnforceAdmin(%s) = false, want allowed", obj)
		}
	}

	ok, err := svc.EnforceAdmin(7, "/admin/orders/42/status", "DELETE")
	if err != nil {
		t.Fatalf("EnforceAdmin failed: %v", err)
	}
	if ok {
		t.Fatal("DELETE should not be allowed")
	}

	ok, err = svc.EnforceAdmin(8, "/admin/orders/42/status", "PUT")
	if err != nil {
		t.Fatalf("EnforceAdmin failed: %v", err)
	}
	if ok {
		t.Fatal("an admin without the role should be denied")
	}
}

func TestWildcardActionPolicy(t *testing.T) {
	svc := setupAuthzService(t)

	if err := svc.GrantRolePolicy("catalog_manager", "/admin/products/:id", "*"); err != nil {
		t.Fatalf("GrantRolePolicy failed: %v", err)
	}
	if err := svc.SetAdminRoles(3, []string{"catalog_manager"}); err != nil {
		t.Fatalf("SetAdminRoles failed: %v", err)
	}

	for _, act := range []string{"GET", "PUT", "DELETE"} {
		ok, err := svc.EnforceAdmin(3, "/admin/products/9", act)
		if err != nil {
			t.Fatalf("EnforceAdmin(%s) failed: %v", act, err)
		}
		if !ok {
			t.Fatalf("EnforceAdmin(%s) = false, want allowed via wildcard", act)
		}
	}
}

func TestSetAdminRolesReplacesAssignments(t *testing.T) {
	svc := setupAuthzService(t)

	if err := svc.SetAdminRoles(5, []string{"catalog_manager", "order_support"}); err != nil {
		t.Fatalf("SetAdminRoles failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(5)
	if err != nil {
		t.Fatalf("GetAdminRoles failed: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("roles = %v, want 2 entries", roles)
	}

	if err := svc.SetAdminRoles(5, []string{"readonly_auditor"}); err != nil {
		t.Fatalf("second SetAdminRoles failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(5)
	if err != nil {
		t.Fatalf("GetAdminRoles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:readonly_auditor" {
		t.Fatalf("roles = %v, want [role:readonly_auditor]", roles)
	}
}

func TestDeleteRoleRemovesRules(t *testing.T) {
	svc := setupAuthzService(t)

	if err := svc.GrantRolePolicy("temp_role", "/admin/fees", "GET"); err != nil {
		t.Fatalf("GrantRolePolicy failed: %v", err)
	}
	if err := svc.SetAdminRoles(2, []string{"temp_role"}); err != nil {
		t.Fatalf("SetAdminRoles failed: %v", err)
	}

	if err := svc.DeleteRole("temp_role"); err != nil {
		t.Fatalf("DeleteRole failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("ListRoles failed: %v", err)
	}
	for _, role := range roles {
		if role == "role:temp_role" {
			t.Fatal("deleted role still listed")
		}
	}

	ok, err := svc.EnforceAdmin(2, "/admin/fees", "GET")
	if err != nil {
		t.Fatalf("EnforceAdmin failed: %v", err)
	}
	if ok {
		t.Fatal("grants of a deleted role must no longer apply")
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzService(t)

	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("BootstrapBuiltinRoles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("ListRoles failed: %v", err)
	}
	want := map[string]bool{
		"role:readonly_auditor": false,
		"role:catalog_manager":  false,
		"role:order_support":    false,
	}
	for _, role := range roles {
		if _, known := want[role]; known {
			want[role] = true
		}
	}
	for role, seen := range want {
		if !seen {
			t.Fatalf("builtin role %s missing from %v", role, roles)
		}
	}

	// catalog_manager inherits the auditor's read access.
	if err := svc.SetAdminRoles(11, []string{"catalog_manager"}); err != nil {
		t.Fatalf("SetAdminRoles failed: %v", err)
	}
	ok, err := svc.EnforceAdmin(11, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("EnforceAdmin failed: %v", err)
	}
	if !ok {
		t.Fatal("catalog_manager should inherit readonly access")
	}
	ok, err = svc.EnforceAdmin(11, "/admin/orders/9/status", "PUT")
	if err != nil {
		t.Fatalf("EnforceAdmin failed: %v", err)
	}
	if ok {
		t.Fatal("catalog_manager must not mutate orders")
	}

	// Re-running the bootstrap is safe.
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("repeat BootstrapBuiltinRoles failed: %v", err)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/api/v1", "/"},
		{"/api/v1/admin/orders", "/admin/orders"},
		{"/admin/orders", "/admin/orders"},
		{"admin/orders", "/admin/orders"},
		{"  /admin/orders/:id  ", "/admin/orders/:id"},
	}
	for _, tc := range cases {
		if got := NormalizeObject(tc.in); got != tc.want {
			t.Fatalf("NormalizeObject(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatal("blank role should be rejected")
	}
	got, err := NormalizeRole("order support")
	if err != nil {
		t.Fatalf("NormalizeRole failed: %v", err)
	}
	if got != "role:order_support" {
		t.Fatalf("NormalizeRole = %q, want role:order_support", got)
	}
	got, err = NormalizeRole("role:catalog_manager")
	if err != nil {
		t.Fatalf("NormalizeRole failed: %v", err)
	}
	if got != "role:catalog_manager" {
		t.Fatalf("NormalizeRole = %q, want role:catalog_manager", got)
	}
}
