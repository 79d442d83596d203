package todos

import (
	"strings"

	"github.com/google/uuid"
)

// Item is a to-do entry. Identity is the ID; everything else may differ between the
// stores and the cache until they are reconciled.
type Item struct {
	ID          string `gorm:"column:entryid;primaryKey"`
	Title       string `gorm:"column:title;not null;default:''"`
	Description string `gorm:"column:description;not null;default:''"`
	Completed   bool   `gorm:"column:completed;not null;default:false"`
}

func (Item) TableName() string {
	return "tasks"
}

func NewItem(title, description string) Item {
	return Item{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
	}
}

func (i Item) Active() bool {
	return !i.Completed
}

func (i Item) IsEmpty() bool {
	return strings.TrimSpace(i.Title) == "" && strings.TrimSpace(i.Description) == ""
}

func (i Item) TitleForList() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Description
}

// WithCompleted returns a copy carrying the given completion flag.
func (i Item) WithCompleted(completed bool) Item {
	i.Completed = completed
	return i
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter accepts an empty value as FilterAll.
func ParseFilter(value string) (Filter, bool) {
	switch filter := Filter(strings.ToLower(strings.TrimSpace(value))); filter {
	case "":
		return FilterAll, true
	case FilterAll, FilterActive, FilterCompleted:
		return filter, true
	default:
		return "", false
	}
}

func (f Filter) Match(item Item) bool {
	switch f {
	case FilterActive:
		return item.Active()
	case FilterCompleted:
		return item.Completed
	default:
		return true
	}
}

type Stats struct {
	Active    int
	Completed int
}

type CreateItemInput struct {
	Title       string
	Description string
}

type UpdateItemInput struct {
	Title       string
	Description string
}
