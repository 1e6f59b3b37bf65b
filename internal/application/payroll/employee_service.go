// Package payroll implements the payroll use cases: employees, advances with
// their automatic and manual deductions, salary payments and bonuses.
package payroll

import (
	"context"
	"strings"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// EmployeeService manages the employee register
type EmployeeService struct {
	rt uow.Runtime
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(rt uow.Runtime) *EmployeeService {
	return &EmployeeService{rt: rt}
}

// Create hires an employee into the caller's branch
func (s *EmployeeService) Create(ctx context.Context, rc shared.RequestContext, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "employee", "create")
	defer span.End()

	branchID, err := rc.ResolveBranch(req.BranchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrBranchID, branchID.String())

	var hired *payroll.Employee
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		if err := branch.RequireActive(ctx, repos.Branches(), branchID); err != nil {
			return err
		}
		hireDate := s.rt.Now()
		if req.HireDate != nil {
			hireDate = *req.HireDate
		}
		e, err := payroll.NewEmployee(branchID, req.Name, req.Position, req.Phone, req.MonthlySalary, hireDate)
		if err != nil {
			return err
		}
		e.SetCreatedBy(rc.UserID)
		if err := repos.Employees().Save(ctx, e); err != nil {
			return err
		}
		events.Collect(e)
		hired = e
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToEmployeeResponse(hired)
	return &resp, nil
}

// Get returns one employee of the caller's scope
func (s *EmployeeService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*EmployeeResponse, error) {
	e, err := loadEmployee(ctx, s.rt.Repos.Employees(), rc, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// List returns employees of the caller's scope
func (s *EmployeeService) List(ctx context.Context, rc shared.RequestContext, f EmployeeListFilter) ([]EmployeeResponse, int64, error) {
	filter := payroll.EmployeeFilter{
		Filter:   pageFilter(f.Page, f.PageSize, f.Search),
		BranchID: f.BranchID,
		Status:   payroll.EmployeeStatus(strings.ToUpper(f.Status)),
	}
	employees, total, err := s.rt.Repos.Employees().List(ctx, rc, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, ToEmployeeResponse(&employees[i]))
	}
	return out, total, nil
}

// UpdateSalary changes the monthly salary used by future payments
func (s *EmployeeService) UpdateSalary(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req UpdateSalaryRequest) (*EmployeeResponse, error) {
	var updated *payroll.Employee
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		e, err := loadEmployee(ctx, repos.Employees(), rc, id)
		if err != nil {
			return err
		}
		if err := e.UpdateSalary(req.MonthlySalary); err != nil {
			return err
		}
		updated = e
		return repos.Employees().Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(updated)
	return &resp, nil
}

// Resign ends an employment. Open advances remain recoverable.
func (s *EmployeeService) Resign(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*EmployeeResponse, error) {
	var updated *payroll.Employee
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		e, err := loadEmployee(ctx, repos.Employees(), rc, id)
		if err != nil {
			return err
		}
		if err := e.Resign(s.rt.Now()); err != nil {
			return err
		}
		updated = e
		return repos.Employees().Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(updated)
	return &resp, nil
}

// loadEmployee fetches an employee and checks the caller may see its branch
func loadEmployee(ctx context.Context, repo payroll.EmployeeRepository, rc shared.RequestContext, id uuid.UUID) (*payroll.Employee, error) {
	e, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(e.BranchID); err != nil {
		return nil, err
	}
	return e, nil
}

func pageFilter(page, pageSize int, search string) shared.Filter {
	f := shared.DefaultFilter()
	f.Page = page
	f.PageSize = pageSize
	f.Search = strings.TrimSpace(search)
	return f.Normalize()
}
