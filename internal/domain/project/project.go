// Package project holds the project-management domain: projects and their
// members, tasks, documents, comments, the per-project activity timeline,
// and per-user notifications.
package project

import (
	"strings"
	"time"

	"github.com/projecthub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project is the aggregate root of the project context. The creator owns
// the project; members share visibility into everything under it.
type Project struct {
	shared.OwnedAggregateRoot
	Name        string
	Description string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	MemberIDs   []uuid.UUID // loaded by the repository from the membership table
}

// NewProject creates a new active project owned by createdBy
func NewProject(createdBy uuid.UUID, name, description string) (*Project, error) {
	if err := validateProjectName(name); err != nil {
		return nil, err
	}

	p := &Project{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy),
		Name:               strings.TrimSpace(name),
		Description:        description,
		Status:             ProjectStatusActive,
		MemberIDs:          make([]uuid.UUID, 0),
	}

	p.AddDomainEvent(NewProjectCreatedEvent(p))

	return p, nil
}

// Rename sets a new project name
func (p *Project) Rename(name string) error {
	if err := validateProjectName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDescription sets the project description
func (p *Project) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetStatus transitions the project to the given status
func (p *Project) SetStatus(status ProjectStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown project status")
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDates sets the planned date range. An end date before the start date
// is rejected.
func (p *Project) SetDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}

	p.StartDate = start
	p.EndDate = end
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddMember adds a user to the project's member set. Adding the owner or an
// existing member is a no-op.
func (p *Project) AddMember(userID uuid.UUID) {
	if userID == p.CreatedBy || p.HasMember(userID) {
		return
	}

	p.MemberIDs = append(p.MemberIDs, userID)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// RemoveMember removes a user from the member set
func (p *Project) RemoveMember(userID uuid.UUID) {
	members := make([]uuid.UUID, 0, len(p.MemberIDs))
	for _, id := range p.MemberIDs {
		if id != userID {
			members = append(members, id)
		}
	}
	p.MemberIDs = members
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// HasMember reports whether the user is in the member set (owner excluded)
func (p *Project) HasMember(userID uuid.UUID) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsVisibleTo is the access-scope predicate: a project is visible to its
// owner and to its members, and to nobody else.
func (p *Project) IsVisibleTo(userID uuid.UUID) bool {
	return p.CreatedBy == userID || p.HasMember(userID)
}

func validateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot exceed 200 characters")
	}
	return nil
}
