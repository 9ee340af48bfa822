package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ViolationCountKey returns the cache key for a student's proctoring
// violation counter on one deployment.
func (r *CacheKeyStruct) ViolationCountKey(deploymentID uuid.UUID, studentID int) string {
	return fmt.Sprintf("exam:cheating:%s:%d", deploymentID, studentID)
}

// ForceSubmitLockKey returns the short-lived mutex key guarding the
// forced-submit path for one (deployment, student) pair.
func (r *CacheKeyStruct) ForceSubmitLockKey(deploymentID uuid.UUID, studentID int) string {
	return fmt.Sprintf("exam:force_submit_lock:%s:%d", deploymentID, studentID)
}

var CacheKey = NewCacheKeyStruct()
