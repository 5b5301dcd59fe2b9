package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the lifecycle state of a task instance.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusSkipped    TaskStatus = "skipped"
)

// AllStatuses lists statuses in display order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusSkipped}
}

// IsTerminal reports whether a day's task instance can no longer change
// state. Rollover creates a fresh instance instead of reopening it.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// ValidateStatusTransition reports whether a task may move from one status
// to another.
func ValidateStatusTransition(from, to TaskStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusCompleted || to == StatusSkipped
	case StatusInProgress:
		return to == StatusPending || to == StatusCompleted
	default:
		return false
	}
}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Category groups tasks for analytics.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryLearning Category = "learning"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// Categories returns the five fixed categories in report order.
func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryLearning, CategoryHealth, CategoryOther}
}

// TimeSegment is one contiguous interval of active work on a task. A nil
// EndTime marks the segment that is currently running.
type TimeSegment struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

// IsOpen reports whether the segment is still running.
func (s TimeSegment) IsOpen() bool { return s.EndTime == nil }

// Task is a planned unit of work for one calendar day.
type Task struct {
	ID          string       `json:"id" validate:"required"`
	Title       string       `json:"title" validate:"required,min=1,max=255"`
	Description string       `json:"description,omitempty"`
	Category    Category     `json:"category" validate:"required,oneof=work personal learning health other"`
	Priority    TaskPriority `json:"priority" validate:"required,oneof=low medium high urgent"`
	// Duration is the planned length in minutes.
	Duration  int      `json:"duration" validate:"min=0"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string   `json:"timeSlot" validate:"omitempty,datetime=15:04"`
	Recurring bool     `json:"recurring"`
	Tags      []string `json:"tags,omitempty"`

	Status       TaskStatus    `json:"status" validate:"required,oneof=pending in-progress completed skipped"`
	TimeSegments []TimeSegment `json:"timeSegments"`
	// ActualDuration is whole minutes of recorded work, derived from
	// TimeSegments.
	ActualDuration int  `json:"actualDuration"`
	ActualSeconds  int  `json:"actualDurationSeconds,omitempty"`
	CarryOver      bool `json:"carryOver,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// OpenSegment returns the running segment, if any.
func (t *Task) OpenSegment() *TimeSegment {
	for i := range t.TimeSegments {
		if t.TimeSegments[i].IsOpen() {
			return &t.TimeSegments[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.TimeSegments != nil {
		c.TimeSegments = make([]TimeSegment, len(t.TimeSegments))
		for i, seg := range t.TimeSegments {
			c.TimeSegments[i] = seg
			if seg.EndTime != nil {
				end := *seg.EndTime
				c.TimeSegments[i].EndTime = &end
			}
		}
	}
	if t.StartedAt != nil {
		v := *t.StartedAt
		c.StartedAt = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	return c
}

// RolloverKey identifies "the same" recurring task across days.
type RolloverKey struct {
	Title    string
	TimeSlot string
	Category Category
}

// Key returns the task's rollover identity.
func (t Task) Key() RolloverKey {
	return RolloverKey{Title: t.Title, TimeSlot: t.TimeSlot, Category: t.Category}
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}
