package app

import (
	"gorm.io/gorm"

	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
)

type Repos struct {
	Asset      repos.AssetRepo
	Sequence   repos.SequenceRepo
	Shot       repos.ShotRepo
	Department repos.DepartmentRepo
	Task       repos.TaskRepo
	SetVariant repos.SetVariantRepo
	Variant    repos.VariantRepo
	Version    repos.VariantVersionRepo
	File       repos.FileRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Asset:      repos.NewAssetRepo(db, log),
		Sequence:   repos.NewSequenceRepo(db, log),
		Shot:       repos.NewShotRepo(db, log),
		Department: repos.NewDepartmentRepo(db, log),
		Task:       repos.NewTaskRepo(db, log),
		SetVariant: repos.NewSetVariantRepo(db, log),
		Variant:    repos.NewVariantRepo(db, log),
		Version:    repos.NewVariantVersionRepo(db, log),
		File:       repos.NewFileRepo(db, log),
	}
}
