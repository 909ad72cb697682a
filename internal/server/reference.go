package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
)

func (s *Server) CreateDepartment(c *gin.Context) {
	var req refdomain.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.referenceSvc.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "department.create", "department", resp.ID.String(), map[string]any{"code": resp.Code})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListDepartments(c *gin.Context) {
	resp, err := s.referenceSvc.ListDepartments(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDepartment(c *gin.Context) {
	resp, err := s.referenceSvc.GetDepartment(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateFiscalYear(c *gin.Context) {
	var req refdomain.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.referenceSvc.CreateFiscalYear(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "fiscal_year.create", "fiscal_year", resp.ID.String(), map[string]any{"year": resp.Year, "is_open": resp.IsOpen})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListFiscalYears(c *gin.Context) {
	resp, err := s.referenceSvc.ListFiscalYears(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCurrentFiscalYear(c *gin.Context) {
	resp, err := s.referenceSvc.ResolveFiscalYear(c.Request.Context(), "")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateEmployee(c *gin.Context) {
	var req refdomain.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.referenceSvc.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "employee.create", "employee", resp.ID.String(), map[string]any{"employee_no": resp.EmployeeNo, "tin": resp.TIN})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListEmployees(c *gin.Context) {
	resp, err := s.referenceSvc.ListEmployees(c.Request.Context(), strings.TrimSpace(c.Query("department_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEmployee(c *gin.Context) {
	resp, err := s.referenceSvc.GetEmployee(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateVendor(c *gin.Context) {
	var req refdomain.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.referenceSvc.CreateVendor(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "vendor.create", "vendor", resp.ID.String(), map[string]any{"name": resp.Name, "tin": resp.TIN})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListVendors(c *gin.Context) {
	resp, err := s.referenceSvc.ListVendors(c.Request.Context(), strings.TrimSpace(c.Query("name")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetVendor(c *gin.Context) {
	resp, err := s.referenceSvc.GetVendor(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
