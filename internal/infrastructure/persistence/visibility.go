package persistence

import (
	"github.com/projecthub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// visibleProjectIDs builds a subquery selecting the IDs of every project the
// user may see: projects they own plus projects they are a member of. All
// scoped reads in this package go through it, so an id outside the set is
// indistinguishable from a missing row.
func visibleProjectIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	memberOf := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.ProjectMemberModel{}).
		Select("project_id").
		Where("user_id = ?", userID)

	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.ProjectModel{}).
		Select("id").
		Where("created_by = ? OR id IN (?)", userID, memberOf)
}

// deleteProjectCascade removes a project and everything hanging off it.
// Mirrored here (rather than relying on schema-level ON DELETE alone) so the
// sqlite-backed tests observe the same cascade as postgres.
func deleteProjectCascade(tx *gorm.DB, projectID uuid.UUID) error {
	taskIDs := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.TaskModel{}).
		Select("id").
		Where("project_id = ?", projectID)

	if err := tx.Where("project_id = ? OR task_id IN (?)", projectID, taskIDs).
		Delete(&models.CommentModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&models.TaskModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&models.DocumentModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&models.TimelineEventModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMemberModel{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.ProjectModel{}, "id = ?", projectID).Error
}
