package handlers

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/realtime"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
)

const (
	maxEventName = 64
	// adminEventLimit caps the rows shown on the analytics screen.
	adminEventLimit = 200
)

type AnalyticsHandler struct {
	Store *store.Store
	Live  realtime.Publisher
	Admin *AdminPages
}

type trackReq struct {
	EventName *string         `json:"event_name"`
	Page      *string         `json:"page"`
	Section   *string         `json:"section"`
	Element   *string         `json:"element"`
	Metadata  json.RawMessage `json:"metadata"`
}

// Track ingests one event from the public site. No session is needed.
func (h *AnalyticsHandler) Track(c *fiber.Ctx) error {
	var req trackReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	errs := FieldErrors{}
	requireText(errs, "event_name", req.EventName, true)
	if utf8.RuneCountInString(trimmed(req.EventName)) > maxEventName {
		errs.Add("event_name", "event_name must be at most 64 characters")
	}
	checkJSONObject(errs, "metadata", req.Metadata)
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	ev := &models.AnalyticsEvent{
		EventName: trimmed(req.EventName),
		Page:      nullable(req.Page),
		Section:   nullable(req.Section),
		Element:   nullable(req.Element),
		Metadata:  jsonColumn(req.Metadata),
	}
	if err := h.Store.InsertEvent(c.UserContext(), ev); err != nil {
		return storeFail(c, "insert analytics event", err)
	}

	if h.Live != nil {
		if payload, err := json.Marshal(ev); err == nil {
			h.Live.Publish(c.UserContext(), payload)
		} else {
			logging.Log.Warn("marshal live event", zap.Error(err))
		}
	}
	return created(c, ev)
}

// parseDay accepts YYYY-MM-DD or RFC 3339. A bare end date covers the whole day.
func parseDay(raw string, end bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func eventFilter(c *fiber.Ctx) (store.EventFilter, FieldErrors) {
	errs := FieldErrors{}
	f := store.EventFilter{
		EventName: strings.TrimSpace(c.Query("event_name")),
		Page:      strings.TrimSpace(c.Query("page")),
	}
	var err error
	if f.Start, err = parseDay(c.Query("start_date"), false); err != nil {
		errs.Add("start_date", "start_date must be YYYY-MM-DD or RFC 3339")
	}
	if f.End, err = parseDay(c.Query("end_date"), true); err != nil {
		errs.Add("end_date", "end_date must be YYYY-MM-DD or RFC 3339")
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
	return f, errs
}

func (h *AnalyticsHandler) List(c *fiber.Ctx) error {
	f, errs := eventFilter(c)
	if len(errs) > 0 {
		return validationFail(c, errs)
	}
	events, err := h.Store.ListEvents(c.UserContext(), f)
	if err != nil {
		return storeFail(c, "list analytics events", err)
	}
	return success(c, events)
}

// Page renders the admin analytics screen. Invalid dates are ignored there.
func (h *AnalyticsHandler) Page(c *fiber.Ctx) error {
	f, _ := eventFilter(c)
	f.Limit = adminEventLimit
	events, err := h.Store.ListEvents(c.UserContext(), f)
	if err != nil {
		return err
	}
	return h.Admin.render(c, "admin/analytics", "analytics", "Analytics", fiber.Map{
		"Filter":    f,
		"StartDate": c.Query("start_date"),
		"EndDate":   c.Query("end_date"),
		"Events":    events,
	})
}
