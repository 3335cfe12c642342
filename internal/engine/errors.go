package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyCompleted    = errors.New("already completed")
	ErrInsufficientGold    = errors.New("not enough gold")
	ErrDungeonActive       = errors.New("a dungeon is already in progress")
	ErrNoDungeon           = errors.New("no dungeon in progress")
	ErrFullHealth          = errors.New("already at full health")
	ErrUnknownDomain       = errors.New("unknown domain")
	ErrAssessmentFinalized = errors.New("assessment already finalized")
	ErrNameRequired        = errors.New("name is required")
	ErrNoCharacter         = errors.New("no character yet, run the assessment first")
)

// NotFoundError reports an unknown entity id. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InsufficientGoldError is returned when a purchase costs more than the current gold.
type InsufficientGoldError struct {
	Need int
	Have int
}

func (e InsufficientGoldError) Error() string {
	return fmt.Sprintf("not enough gold (need %d, have %d)", e.Need, e.Have)
}

func (e InsufficientGoldError) Is(target error) bool {
	return target == ErrInsufficientGold
}
