package auth

import (
	"log"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"schooladmin.com/internal/model"
)

// 角色门对象。中间件用 Enforce(role, gate, GateAction) 判定放行。
const (
	GateAdmin = "gate:admin" // 仅管理员
	GateStaff = "gate:staff" // 教师或管理员
	GateAny   = "gate:any"   // 任意已认证角色
)

// GateAction is the single action checked against gate objects.
const GateAction = "access"

// NewEnforcer defines the RBAC model and initializes the enforcer.
// With a non-nil db the policy is persisted through the GORM adapter
// (casbin_rule table); with nil the policy stays in memory, which is
// what the tests use.
func NewEnforcer(db *gorm.DB) (*casbin.Enforcer, error) {
	// r = request (role, gate, action)
	// p = policy  (role, gate, action)
	// g = grouping (role hierarchy: ADMIN > TEACHER > STUDENT)
	text := `
		[request_definition]
		r = sub, obj, act

		[policy_definition]
		p = sub, obj, act

		[role_definition]
		g = _, _

		[policy_effect]
		e = some(where (p.eft == allow))

		[matchers]
		m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
	`

	m, err := casbinmodel.NewModelFromString(text)
	if err != nil {
		return nil, err
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, err
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, err
		}
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, err
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, err
		}
	}

	// Seed the default gates when the policy store is empty.
	policies, _ := enforcer.GetPolicy()
	if len(policies) == 0 {
		if _, err := enforcer.AddPolicies([][]string{
			{string(model.RoleAdmin), GateAdmin, GateAction},
			{string(model.RoleTeacher), GateStaff, GateAction},
			{string(model.RoleStudent), GateAny, GateAction},
		}); err != nil {
			return nil, err
		}
		// 角色继承：管理员拥有教师权限，教师拥有学生权限
		if _, err := enforcer.AddGroupingPolicies([][]string{
			{string(model.RoleAdmin), string(model.RoleTeacher)},
			{string(model.RoleTeacher), string(model.RoleStudent)},
		}); err != nil {
			return nil, err
		}
		if db != nil {
			if err := enforcer.SavePolicy(); err != nil {
				log.Printf("RBAC: failed to save default policy: %v", err)
			}
		}
		log.Println("RBAC: default role gates initialized")
	}

	return enforcer, nil
}
