package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/ecosenseai/ecosense/errors"
	"github.com/ecosenseai/ecosense/models"
	"github.com/ecosenseai/ecosense/server/response"
)

// handleCreateReport accepts either a JSON body or a multipart form with
// up to five photos under the "images" field.
func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "userID not found in context", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		var req models.CreateReportRequest
		if err := c.ShouldBind(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		var imageURLs string
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files := form.File["images"]
			if len(files) > 0 {
				urls, err := s.MediaService.ProcessReportImages(files)
				if err != nil {
					response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
					return
				}
				imageURLs = strings.Join(urls, ",")
			}
		}

		report, err := s.ReportService.CreateReport(userID, roleFromCtx(c), &req, imageURLs)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "report created", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleListReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		filter := models.ReportFilter{
			Status:    c.Query("status"),
			WasteType: c.Query("waste_type"),
			Page:      page,
			Limit:     limit,
		}

		list, err := s.ReportService.ListReports(filter)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, list, nil)
	}
}

func (s *Server) handleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		report, err := s.ReportService.GetReport(reportID)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, report, nil)
	}
}

func (s *Server) handleUpdateReportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid report id", http.StatusBadRequest))
			return
		}

		var req models.UpdateStatusRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		report, err := s.ReportService.UpdateReportStatus(roleFromCtx(c), reportID, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "report status updated", http.StatusOK, report, nil)
	}
}

func (s *Server) handleReportStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.ReportService.GetReportStats()
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, stats, nil)
	}
}
