package service

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/stool"
)

// LogStool analyses a stool photo and appends the result for the active
// dog. Pro only.
func (a *App) LogStool(ctx context.Context, imagePath string) (model.StoolLog, error) {
	if !a.ProActive() {
		return model.StoolLog{}, ErrProRequired
	}
	dog, err := a.activeDog()
	if err != nil {
		return model.StoolLog{}, err
	}
	result, brightness, err := stool.AnalyzeFile(imagePath)
	if err != nil {
		return model.StoolLog{}, errors.Join(err, engine.ErrInvalidInput)
	}
	if abs, err := filepath.Abs(imagePath); err == nil {
		imagePath = abs
	}
	entry := model.StoolLog{
		ID:         newID("stool_"),
		DogID:      dog.ID,
		Date:       a.today(),
		Result:     result,
		Brightness: brightness,
		ImagePath:  imagePath,
	}
	a.state.StoolLogs = append(a.state.StoolLogs, entry)
	a.save(ctx)
	return entry, nil
}

func (a *App) StoolLogs() []model.StoolLog {
	out := make([]model.StoolLog, 0, len(a.state.StoolLogs))
	for _, s := range a.state.StoolLogs {
		if s.DogID == a.state.ActiveDogID {
			out = append(out, s)
		}
	}
	return out
}
