package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhaseContent(t *testing.T) {
	tests := []struct {
		name    string
		phase   PhaseName
		raw     string
		wantErr bool
	}{
		{"valid object", PhaseElementImages, `{"images": {}}`, false},
		{"array wrapped object", PhaseSceneVideos, `[{"videos": {}}]`, false},
		{"empty payload", PhaseElementImages, ``, true},
		{"not json", PhaseElementImages, `not json`, true},
		{"bare string", PhaseElementImages, `"hello"`, true},
		{"bare number", PhaseElementImages, `42`, true},
		{"empty array", PhaseElementImages, `[]`, true},
		{"two element array", PhaseElementImages, `[{}, {}]`, true},
		{"unknown phase", PhaseName("storyboard"), `{}`, true},
		{"script with mapping sections", PhaseScriptInterpretation, `{"scenes": {}, "elements": {}}`, false},
		{"script without sections", PhaseScriptInterpretation, `{"notes": "draft"}`, false},
		{"script scenes not mapping", PhaseScriptInterpretation, `{"scenes": [1, 2]}`, true},
		{"script elements not mapping", PhaseScriptInterpretation, `{"elements": "girl"}`, true},
		{"script null section tolerated", PhaseScriptInterpretation, `{"scenes": null}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhaseContent(tt.phase, []byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPhasesForProject(t *testing.T) {
	phases := NewPhasesForProject("project-1")

	assert.Len(t, phases, 5)
	assert.Equal(t, PhaseScriptInterpretation, phases[0].PhaseName)
	assert.Equal(t, PhaseFinalAssembly, phases[4].PhaseName)

	for i, phase := range phases {
		assert.Equal(t, "project-1", phase.ProjectID)
		assert.Equal(t, i+1, phase.PhaseIndex)
	}
	assert.True(t, phases[0].CanProceed)
	assert.Equal(t, PhaseStatusPending, phases[0].Status)
	for _, phase := range phases[1:] {
		assert.False(t, phase.CanProceed)
		assert.Equal(t, PhaseStatusLocked, phase.Status)
	}
}

func TestValidPhaseName(t *testing.T) {
	for _, name := range PhaseOrder {
		assert.True(t, ValidPhaseName(name))
	}
	assert.False(t, ValidPhaseName("storyboard"))
	assert.False(t, ValidPhaseName(""))
}
