package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/setlists/internal/shared"
)

var (
	_ Model = (*Song)(nil)
	_ Model = (*Setlist)(nil)
)

func (s *Song) GetID() int64 { return s.ID }

// Validate requires a non-blank title and body.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is required and must be a non-empty string", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Body) == "" {
		return fmt.Errorf("%w: body is required and must be a non-empty string", shared.ErrInvalidInput)
	}
	return nil
}

func (s *Setlist) GetID() int64 { return s.ID }

// Validate trims the name in place and requires it to be non-empty.
func (s *Setlist) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fmt.Errorf("%w: setlist name is required and must be a non-empty string", shared.ErrInvalidInput)
	}
	return nil
}
