package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/auth"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/middleware"
)

// Content types of the generated documents
const (
	contentTypePDF = "application/pdf"
	contentTypeCSV = "text/csv; charset=utf-8"
)

// viewerFrom builds the viewer of the current session
func viewerFrom(ctx *gin.Context) auth.Viewer {
	role, _ := middleware.RoleFrom(ctx)
	studentID, _ := middleware.StudentIDFrom(ctx)
	return auth.Viewer{Role: role, StudentID: studentID}
}

// respond writes data in the standard envelope together with any persistence warnings
func respond(ctx *gin.Context, status int, data interface{}, warnings ...string) {
	ctx.JSON(status, dto.NewAPIResponse(data, warnings...))
}

// sendDocument renders a document into memory first so a failed render
// still produces a JSON error instead of a truncated download
func sendDocument(ctx *gin.Context, contentType string, render func(*bytes.Buffer) (string, error)) {
	var buf bytes.Buffer
	filename, err := render(&buf)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}
