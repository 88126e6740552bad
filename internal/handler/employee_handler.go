package handler

import (
	"techcom/internal/dto"
	"techcom/internal/service"
	"techcom/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee records.
type EmployeeHandler struct {
	employeeService service.EmployeeService
	validator        *validation.Validator
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, validator: validation.NewValidator()}
}

// Create godoc
// @Summary Register an employee
// @Tags employees
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.EmployeeRequest true "Employee"
// @Success 201 {object} dto.EmployeeResponse
// @Router /employees/create [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	employee, err := h.employeeService.CreateEmployee(c.UserContext(), req)
	if err != nil {
		return err
	}
	return created(c, employee)
}

// GetAll godoc
// @Summary List employees
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.EmployeeResponse]
// @Router /employees/get-all [get]
func (h *EmployeeHandler) GetAll(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Search godoc
// @Summary Search employees
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Name or email substring"
// @Param department query string false "Department substring"
// @Success 200 {object} dto.ListResponse[dto.EmployeeResponse]
// @Router /employees/search [get]
func (h *EmployeeHandler) Search(c *fiber.Ctx) error {
	return h.list(c, false)
}

// GetDeleted godoc
// @Summary List deleted employees
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ListResponse[dto.EmployeeResponse]
// @Router /employees/get-deleted [get]
func (h *EmployeeHandler) GetDeleted(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *EmployeeHandler) list(c *fiber.Ctx, deleted bool) error {
	filter, err := parseSearch(c, h.validator, deleted)
	if err != nil {
		return err
	}
	employees, err := h.employeeService.SearchEmployees(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(employees))
}

// Get godoc
// @Summary Get an employee
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /employees/get/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	employee, err := h.employeeService.GetEmployee(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(employee)
}

// Update godoc
// @Summary Update an employee
// @Tags employees
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body dto.UpdateEmployeeRequest true "Changes"
// @Success 200 {object} dto.EmployeeResponse
// @Router /employees/update/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEmployeeRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	employee, err := h.employeeService.UpdateEmployee(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(employee)
}

// Delete godoc
// @Summary Delete an employee
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.MessageResponse
// @Router /employees/delete/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	if err := h.employeeService.DeleteEmployee(c.UserContext(), id); err != nil {
		return err
	}
	return message(c, "employee deleted")
}

// Restore godoc
// @Summary Restore a deleted employee
// @Tags employees
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 409 {object} middleware.ErrorResponse "Not deleted"
// @Router /employees/restore/{id} [post]
func (h *EmployeeHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, h.validator, "id")
	if err != nil {
		return err
	}
	employee, err := h.employeeService.RestoreEmployee(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(employee)
}
