// README: Recommendation handlers for the sidebar panel and the map listing.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/modules/commuter"
	"carpool/internal/modules/matching"
	"carpool/internal/types"
)

type RecommendationService interface {
	Recommend(ctx context.Context, requesterID types.ID, cfg matching.FilterConfig, opts commuter.PoolOptions) ([]matching.Recommendation, error)
	MapListing(ctx context.Context, requesterID types.ID, cfg matching.FilterConfig, opts commuter.PoolOptions) ([]matching.MapEntry, error)
}

type RecommendationHandler struct {
	matching RecommendationService
}

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{matching: svc}
}

const dateLayout = "2006-01-02"

// filterQuery mirrors the filter panel. Distances are miles and times are
// minutes; omitted values keep the defaults.
type filterQuery struct {
	Days          string   `form:"days" binding:"omitempty,oneof=any exact flexible"`
	FlexDays      *int     `form:"flex_days" binding:"omitempty,min=0,max=7"`
	StartDistance *float64 `form:"start_distance" binding:"omitempty,min=0"`
	EndDistance   *float64 `form:"end_distance" binding:"omitempty,min=0"`
	StartTime     *int     `form:"start_time" binding:"omitempty,min=0"`
	EndTime       *int     `form:"end_time" binding:"omitempty,min=0"`
	DateOverlap   string   `form:"date_overlap" binding:"omitempty,oneof=any partial full"`
	Sort          string   `form:"sort" binding:"omitempty,oneof=composite distance time"`
	DaysWorking   string   `form:"days_working"`
	StartDate     string   `form:"start_date"`
	EndDate       string   `form:"end_date"`
	HideContacted bool     `form:"hide_contacted"`
	Favorites     bool     `form:"favorites"`
}

func (q filterQuery) filterConfig() (matching.FilterConfig, error) {
	cfg := matching.DefaultFilterConfig()
	if q.Days != "" {
		cfg.DayMode = matching.DayMode(q.Days)
	}
	if q.FlexDays != nil {
		cfg.MinSharedDays = *q.FlexDays
	}
	if q.StartDistance != nil {
		cfg.StartDistanceLimit = *q.StartDistance
	}
	if q.EndDistance != nil {
		cfg.EndDistanceLimit = *q.EndDistance
	}
	if q.StartTime != nil {
		cfg.StartTimeLimit = time.Duration(*q.StartTime) * time.Minute
	}
	if q.EndTime != nil {
		cfg.EndTimeLimit = time.Duration(*q.EndTime) * time.Minute
	}
	if q.DateOverlap != "" {
		cfg.DateOverlap = matching.DateOverlapMode(q.DateOverlap)
	}
	if q.Sort != "" {
		cfg.Sort = matching.SortStrategy(q.Sort)
	}

	if q.DaysWorking != "" {
		w, err := commuter.ParseWeek(q.DaysWorking)
		if err != nil {
			return cfg, err
		}
		cfg.DaysWorking = &w
	}

	if q.StartDate != "" || q.EndDate != "" {
		if q.StartDate == "" || q.EndDate == "" {
			return cfg, errors.New("start_date and end_date must be given together")
		}
		start, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return cfg, fmt.Errorf("invalid start_date: %w", err)
		}
		end, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return cfg, fmt.Errorf("invalid end_date: %w", err)
		}
		if end.Before(start) {
			return cfg, errors.New("end_date is before start_date")
		}
		cfg.CoopStart, cfg.CoopEnd = &start, &end
	}
	return cfg, nil
}

func (q filterQuery) poolOptions() commuter.PoolOptions {
	return commuter.PoolOptions{HideContacted: q.HideContacted, FavoritesOnly: q.Favorites}
}

// bind reads the commuter id and filter query, writing a 400 on failure.
func bind(c *gin.Context) (types.ID, filterQuery, matching.FilterConfig, bool) {
	var (
		uri idURI
		q   filterQuery
	)
	if err := c.ShouldBindUri(&uri); err != nil {
		writeError(c, http.StatusBadRequest, "invalid commuter id")
		return "", q, matching.FilterConfig{}, false
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return "", q, matching.FilterConfig{}, false
	}
	cfg, err := q.filterConfig()
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return "", q, matching.FilterConfig{}, false
	}
	return types.ID(uri.ID), q, cfg, true
}

func (h *RecommendationHandler) Sidebar(c *gin.Context) {
	id, q, cfg, ok := bind(c)
	if !ok {
		return
	}
	recs, err := h.matching.Recommend(c.Request.Context(), id, cfg, q.poolOptions())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"recommendations": recs})
}

func (h *RecommendationHandler) Map(c *gin.Context) {
	id, q, cfg, ok := bind(c)
	if !ok {
		return
	}
	entries, err := h.matching.MapListing(c.Request.Context(), id, cfg, q.poolOptions())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"entries": entries})
}
