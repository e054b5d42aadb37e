package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/svnstat/svnstat/internal/errors"
	"github.com/svnstat/svnstat/internal/models"
	"github.com/svnstat/svnstat/internal/stats"
)

// Service is the sync/statistics surface the API exposes.
type Service interface {
	Sync(ctx context.Context, repoURL string) (*models.SyncResult, error)
	Stats(ctx context.Context, repoURL string, override *models.DateRange, mode stats.Mode) (*stats.Summary, error)
	Authors(ctx context.Context, repoURL string, limit int) ([]*models.AuthorStats, error)
	Commits(ctx context.Context, repoURL string, limit, offset int) ([]*models.Commit, int64, error)
	Reset(ctx context.Context, repoURL string) error
}

// Handler serves the JSON API.
type Handler struct {
	service Service
	logger  *logrus.Logger
}

// NewHandler creates a new API handler
func NewHandler(service Service, logger *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CommitListResponse is the paginated commit payload.
type CommitListResponse struct {
	Commits []*models.Commit `json:"commits"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func respondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsValidationError(err), apperrors.IsCallerContract(err):
		status = http.StatusBadRequest
	}
	var inProgress *apperrors.SyncInProgressError
	if errors.As(err, &inProgress) {
		status = http.StatusConflict
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func repoParam(c *gin.Context) (string, bool) {
	repoURL := c.Query("repo")
	if repoURL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required repo parameter"})
		return "", false
	}
	return repoURL, true
}

func intQueryParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// parseDateParam accepts a plain date or a full RFC3339 instant.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// rangeOverride builds the reporting range override from from/to/last query
// parameters. Absent parameters mean "use the persisted range".
func rangeOverride(c *gin.Context) (*models.DateRange, error) {
	if raw := c.Query("last"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return nil, apperrors.NewValidationError("invalid last parameter (use a positive day count)", err)
		}
		rng := models.LastDays(days, time.Now())
		return &rng, nil
	}

	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" && toRaw == "" {
		return nil, nil
	}
	if fromRaw == "" || toRaw == "" {
		return nil, apperrors.NewValidationError("from and to must be supplied together", nil)
	}

	from, err := parseDateParam(fromRaw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid from parameter (use YYYY-MM-DD or RFC3339)", err)
	}
	to, err := parseDateParam(toRaw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid to parameter (use YYYY-MM-DD or RFC3339)", err)
	}
	if from.After(to) {
		return nil, apperrors.NewValidationError("from must not be after to", nil)
	}

	return &models.DateRange{Start: from, End: to}, nil
}

// GetStats returns the aggregated statistics for a repository.
func (h *Handler) GetStats(c *gin.Context) {
	repoURL, ok := repoParam(c)
	if !ok {
		return
	}

	override, err := rangeOverride(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.service.Stats(c.Request.Context(), repoURL, override, stats.ModeAll)
	if err != nil {
		h.logger.WithError(err).Error("Failed to aggregate stats")
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetCommits returns a page of persisted commits.
func (h *Handler) GetCommits(c *gin.Context) {
	repoURL, ok := repoParam(c)
	if !ok {
		return
	}

	limit, err := intQueryParam(c, "limit", 50)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit parameter"})
		return
	}
	offset, err := intQueryParam(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset parameter"})
		return
	}

	commits, total, err := h.service.Commits(c.Request.Context(), repoURL, limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list commits")
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CommitListResponse{
		Commits: commits,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// GetAuthors returns per-author totals.
func (h *Handler) GetAuthors(c *gin.Context) {
	repoURL, ok := repoParam(c)
	if !ok {
		return
	}

	limit, err := intQueryParam(c, "limit", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit parameter"})
		return
	}

	authors, err := h.service.Authors(c.Request.Context(), repoURL, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get authors")
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authors)
}

// TriggerSync runs one synchronization pass and returns its result.
func (h *Handler) TriggerSync(c *gin.Context) {
	repoURL, ok := repoParam(c)
	if !ok {
		return
	}

	result, err := h.service.Sync(c.Request.Context(), repoURL)
	if err != nil {
		h.logger.WithError(err).Error("Sync failed")
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResetRepository deletes all persisted data for a repository.
func (h *Handler) ResetRepository(c *gin.Context) {
	repoURL, ok := repoParam(c)
	if !ok {
		return
	}

	if err := h.service.Reset(c.Request.Context(), repoURL); err != nil {
		h.logger.WithError(err).Error("Failed to reset repository")
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
