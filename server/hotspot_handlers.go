package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/ecosenseai/ecosense/errors"
	"github.com/ecosenseai/ecosense/models"
	"github.com/ecosenseai/ecosense/server/response"
)

func (s *Server) handleGetHotspots() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if limit < 1 || limit > 100 {
			limit = 100
		}

		hotspots, err := s.HotspotRepository.GetHotspots(limit)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, hotspots, nil)
	}
}

func (s *Server) handleGetHotspot() gin.HandlerFunc {
	return func(c *gin.Context) {
		hotspotID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid hotspot id", http.StatusBadRequest))
			return
		}

		hotspot, err := s.HotspotRepository.GetHotspotByID(hotspotID)
		if err != nil {
			respondError(c, err)
			return
		}

		reports, err := s.HotspotRepository.GetReportsNearHotspot(hotspot, 10)
		if err != nil {
			respondError(c, err)
			return
		}

		response.JSON(c, "", http.StatusOK, models.HotspotDetail{
			Hotspot:       *hotspot,
			NearbyReports: reports,
		}, nil)
	}
}
