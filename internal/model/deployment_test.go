package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func windowDeployment(status DeploymentStatus, openAt, closeAt time.Time) *Deployment {
	return &Deployment{Status: status, OpenAt: openAt, CloseAt: closeAt}
}

func TestWindowAt(t *testing.T) {
	now := time.Now()

	t.Run("activated and open", func(t *testing.T) {
		d := windowDeployment(DeploymentActivated, now.Add(-time.Hour), now.Add(time.Hour))
		assert.Equal(t, WindowOpen, d.WindowAt(now))
	})

	t.Run("not yet open", func(t *testing.T) {
		d := windowDeployment(DeploymentActivated, now.Add(time.Hour), now.Add(2*time.Hour))
		assert.Equal(t, WindowNotYetOpen, d.WindowAt(now))
	})

	t.Run("time closed", func(t *testing.T) {
		d := windowDeployment(DeploymentActivated, now.Add(-2*time.Hour), now.Add(-time.Hour))
		assert.Equal(t, WindowClosed, d.WindowAt(now))
	})

	t.Run("closed wins over deactivated", func(t *testing.T) {
		d := windowDeployment(DeploymentDeactivated, now.Add(-2*time.Hour), now.Add(-time.Hour))
		assert.Equal(t, WindowClosed, d.WindowAt(now))
	})

	t.Run("deactivated while in window", func(t *testing.T) {
		d := windowDeployment(DeploymentDeactivated, now.Add(-time.Hour), now.Add(time.Hour))
		assert.Equal(t, WindowDeactivated, d.WindowAt(now))
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		d := windowDeployment(DeploymentActivated, now, now.Add(time.Hour))
		assert.Equal(t, WindowOpen, d.WindowAt(now))

		d = windowDeployment(DeploymentActivated, now.Add(-time.Hour), now)
		assert.Equal(t, WindowOpen, d.WindowAt(now))
	})
}
