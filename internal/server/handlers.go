package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/quickhire/internal/constants"
	"github.com/julianstephens/quickhire/internal/models"
	"github.com/julianstephens/quickhire/internal/planner"
	"github.com/julianstephens/quickhire/internal/utils"
	"github.com/julianstephens/quickhire/internal/validation"
)

type handlers struct {
	deps Deps
}

type technologySummary struct {
	Name         string   `json:"name"`
	Aliases      []string `json:"aliases,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	AuthoredDays int      `json:"authored_days"`
}

type generatedResponse struct {
	Plan    models.GeneratedPlan `json:"plan"`
	Notices []string             `json:"notices,omitempty"`
}

type savedResponse struct {
	Plan    models.StudyPlan `json:"plan"`
	Notices []string         `json:"notices,omitempty"`
}

type dayCompletionRequest struct {
	Completed *bool `json:"completed"`
}

func (h *handlers) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	status := http.StatusOK
	db := "ok"
	if err := h.deps.Store.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		db = err.Error()
	}
	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"version":  constants.Version,
		"backend":  h.deps.Store.Backend(),
		"database": db,
	})
}

func (h *handlers) listTechnologies(c *gin.Context) {
	sets := h.deps.Generator.Catalog().Sets()
	out := make([]technologySummary, 0, len(sets))
	for _, s := range sets {
		out = append(out, technologySummary{Name: s.Name, Aliases: s.Aliases, Summary: s.Summary, AuthoredDays: s.AuthoredDays()})
	}
	c.JSON(http.StatusOK, out)
}

// bindPlanConfig reads and validates a plan configuration, filling omitted fields.
func (h *handlers) bindPlanConfig(c *gin.Context) (models.PlanConfig, bool) {
	var cfg models.PlanConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, fmt.Errorf("invalid JSON body: %w", err))
		return cfg, false
	}
	cfg = planner.WithDefaults(cfg)
	if err := validation.ValidatePlanConfig(cfg); err != nil {
		fail(c, err)
		return cfg, false
	}
	return cfg, true
}

func (h *handlers) generatePlan(c *gin.Context) {
	cfg, ok := h.bindPlanConfig(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, generatedResponse{
		Plan:    h.deps.Generator.Generate(cfg),
		Notices: h.deps.Generator.Notices(cfg),
	})
}

func (h *handlers) createPlan(c *gin.Context) {
	cfg, ok := h.bindPlanConfig(c)
	if !ok {
		return
	}
	saved, err := h.deps.Services.Plans.Save(c.Request.Context(), h.deps.Generator.Generate(cfg))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, savedResponse{Plan: saved, Notices: h.deps.Generator.Notices(cfg)})
}

func (h *handlers) listPlans(c *gin.Context) {
	plans, err := h.deps.Services.Plans.List(c.Request.Context(), c.Query("deleted") == "true")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *handlers) getPlan(c *gin.Context) {
	plan, err := h.deps.Services.Plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *handlers) deletePlan(c *gin.Context) {
	if err := h.deps.Services.Plans.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) restorePlan(c *gin.Context) {
	if err := h.deps.Services.Plans.Restore(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setDayCompleted(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		badRequest(c, fmt.Errorf("day must be a positive integer, got %q", c.Param("day")))
		return
	}
	var req dayCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid JSON body: %w", err))
		return
	}
	if req.Completed == nil {
		badRequest(c, fmt.Errorf("completed is required"))
		return
	}
	updated, err := h.deps.Services.Plans.SetDayCompleted(c.Request.Context(), c.Param("id"), day, *req.Completed)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) planProgress(c *gin.Context) {
	p, err := h.deps.Services.Plans.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listExperiences(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	list, err := h.deps.Services.Experiences.List(c.Request.Context(), models.ExperienceFilter{
		Company: c.Query("company"),
		Role:    c.Query("role"),
		Result:  models.ExperienceResult(c.Query("result")),
		Limit:   limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createExperience(c *gin.Context) {
	var e models.Experience
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, fmt.Errorf("invalid JSON body: %w", err))
		return
	}
	created, err := h.deps.Services.Experiences.Create(c.Request.Context(), e)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getExperience(c *gin.Context) {
	e, err := h.deps.Services.Experiences.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *handlers) updateExperience(c *gin.Context) {
	var e models.Experience
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, fmt.Errorf("invalid JSON body: %w", err))
		return
	}
	e.ID = c.Param("id")
	updated, err := h.deps.Services.Experiences.Update(c.Request.Context(), e)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteExperience(c *gin.Context) {
	if err := h.deps.Services.Experiences.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listJobs(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	list, err := h.deps.Services.Jobs.List(c.Request.Context(), models.JobFilter{
		Keyword:         c.Query("q"),
		Location:        c.Query("location"),
		JobType:         models.JobType(c.Query("job_type")),
		ExperienceLevel: c.Query("experience_level"),
		Limit:           limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createJob(c *gin.Context) {
	var j models.JobListing
	if err := c.ShouldBindJSON(&j); err != nil {
		badRequest(c, fmt.Errorf("invalid JSON body: %w", err))
		return
	}
	created, err := h.deps.Services.Jobs.Create(c.Request.Context(), j)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getJob(c *gin.Context) {
	j, err := h.deps.Services.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *handlers) deleteJob(c *gin.Context) {
	if err := h.deps.Services.Jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listEvents(c *gin.Context) {
	from, ok := queryTime(c, "from")
	if !ok {
		return
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return
	}
	list, err := h.deps.Services.Events.List(c.Request.Context(), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) upcomingEvents(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	list, err := h.deps.Services.Events.Upcoming(c.Request.Context(), h.deps.Now(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createEvent(c *gin.Context) {
	var e models.CareerEvent
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, fmt.Errorf("invalid JSON body: %w", err))
		return
	}
	created, err := h.deps.Services.Events.Create(c.Request.Context(), e)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) getEvent(c *gin.Context) {
	e, err := h.deps.Services.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *handlers) deleteEvent(c *gin.Context) {
	if err := h.deps.Services.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		badRequest(c, fmt.Errorf("limit must be a non-negative integer, got %q", raw))
		return 0, false
	}
	return n, true
}

// queryTime parses an optional RFC3339 timestamp or date query parameter, in UTC.
func queryTime(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := utils.ParseDateTime(raw, time.UTC)
	if err != nil {
		badRequest(c, fmt.Errorf("%s: %w", key, err))
		return time.Time{}, false
	}
	return t, true
}
