package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/zarandamon/usd-mercury-pipeline/internal/cache"
	"github.com/zarandamon/usd-mercury-pipeline/internal/data/repos"
	types "github.com/zarandamon/usd-mercury-pipeline/internal/domain"
	"github.com/zarandamon/usd-mercury-pipeline/internal/pkg/pipeerr"
	"github.com/zarandamon/usd-mercury-pipeline/internal/platform/logger"
	"github.com/zarandamon/usd-mercury-pipeline/internal/resolve"
	"github.com/zarandamon/usd-mercury-pipeline/internal/usd"
)

// EntityService manages the top-level production entities and their root
// documents. Each create writes the document first and records the row
// after, so a failed document write never leaves a dangling row.
type EntityService interface {
	CreateAsset(ctx context.Context, assetType, name, description string) (*types.Asset, error)
	CreateSequence(ctx context.Context, name, description string) (*types.Sequence, error)
	CreateShot(ctx context.Context, sequenceName, name, frameRange, description string) (*types.Shot, error)

	ListAssets(ctx context.Context) ([]types.Asset, error)
	ListSequences(ctx context.Context) ([]types.Sequence, error)
	ListShots(ctx context.Context, sequenceName string) ([]types.Shot, error)

	AddSublayer(ctx context.Context, parent resolve.ParentNames, sublayerPath string) error
	RemoveSublayer(ctx context.Context, parent resolve.ParentNames, sublayerPath string) error

	DeleteAsset(ctx context.Context, name string) error
	DeleteSequence(ctx context.Context, name string) error
	DeleteShot(ctx context.Context, sequenceName, name string) error
}

type entityService struct {
	assets    repos.AssetRepo
	sequences repos.SequenceRepo
	shots     repos.ShotRepo
	resolver  *resolve.Resolver
	layout    resolve.Layout
	cache     *cache.Cache
	log       *logger.Logger
}

func NewEntityService(
	assets repos.AssetRepo,
	sequences repos.SequenceRepo,
	shots repos.ShotRepo,
	resolver *resolve.Resolver,
	layout resolve.Layout,
	c *cache.Cache,
	baseLog *logger.Logger,
) EntityService {
	return &entityService{
		assets:    assets,
		sequences: sequences,
		shots:     shots,
		resolver:  resolver,
		layout:    layout,
		cache:     c,
		log:       baseLog.With("service", "EntityService"),
	}
}

func (s *entityService) CreateAsset(ctx context.Context, assetType, name, description string) (*types.Asset, error) {
	docPath := s.layout.AssetDoc(name)

	info := map[string]string{"assetType": assetType}
	if _, err := usd.CreateNew(docPath, usd.CreateOpts{Kind: "component", AssetInfo: info}); err != nil {
		return nil, fmt.Errorf("create asset document: %w", err)
	}

	infoJSON, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode asset info: %w", err)
	}

	asset := &types.Asset{
		Type:         assetType,
		Name:         name,
		Description:  description,
		DocumentPath: docPath,
		AssetInfo:    datatypes.JSON(infoJSON),
	}
	if err := s.assets.Create(ctx, nil, asset); err != nil {
		return nil, fmt.Errorf("create asset row: %w", err)
	}

	s.cache.Invalidate(cache.KindAssets, cache.RootScope)
	s.log.Info("created asset", "name", name, "type", assetType)
	return asset, nil
}

func (s *entityService) CreateSequence(ctx context.Context, name, description string) (*types.Sequence, error) {
	docPath := s.layout.SequenceDoc(name)

	info := map[string]string{"seqDescription": description}
	if _, err := usd.CreateNew(docPath, usd.CreateOpts{AssetInfo: info}); err != nil {
		return nil, fmt.Errorf("create sequence document: %w", err)
	}

	seq := &types.Sequence{
		Name:         name,
		Description:  description,
		DocumentPath: docPath,
	}
	if err := s.sequences.Create(ctx, nil, seq); err != nil {
		return nil, fmt.Errorf("create sequence row: %w", err)
	}

	s.cache.Invalidate(cache.KindSequences, cache.RootScope)
	s.log.Info("created sequence", "name", name)
	return seq, nil
}

func parseFrameRange(frameRange string) (int, int, error) {
	parts := strings.SplitN(frameRange, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("frame range %q: want start-end", frameRange)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("frame range %q: %w", frameRange, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("frame range %q: %w", frameRange, err)
	}
	return start, end, nil
}

func (s *entityService) CreateShot(ctx context.Context, sequenceName, name, frameRange, description string) (*types.Shot, error) {
	seq, err := s.resolver.Sequence(ctx, sequenceName)
	if err != nil {
		return nil, err
	}

	start, end, err := parseFrameRange(frameRange)
	if err != nil {
		return nil, err
	}

	docPath := s.layout.ShotDoc(sequenceName, name)
	info := map[string]string{"shotDescription": description}
	opts := usd.CreateOpts{AssetInfo: info, StartTC: &start, EndTC: &end}
	if _, err := usd.CreateNew(docPath, opts); err != nil {
		return nil, fmt.Errorf("create shot document: %w", err)
	}

	shot := &types.Shot{
		SequenceID:   seq.ID,
		Name:         name,
		FrameRange:   frameRange,
		Description:  description,
		DocumentPath: docPath,
	}
	if err := s.shots.Create(ctx, nil, shot); err != nil {
		return nil, fmt.Errorf("create shot row: %w", err)
	}

	s.cache.Invalidate(cache.KindShots, cache.ScopeID(seq.ID))
	s.log.Info("created shot", "sequence", sequenceName, "name", name, "frameRange", frameRange)
	return shot, nil
}

func (s *entityService) ListAssets(ctx context.Context) ([]types.Asset, error) {
	return cache.GetList(ctx, s.cache, cache.KindAssets, cache.RootScope, func(ctx context.Context) ([]types.Asset, error) {
		return s.assets.List(ctx, nil)
	})
}

func (s *entityService) ListSequences(ctx context.Context) ([]types.Sequence, error) {
	return cache.GetList(ctx, s.cache, cache.KindSequences, cache.RootScope, func(ctx context.Context) ([]types.Sequence, error) {
		return s.sequences.List(ctx, nil)
	})
}

func (s *entityService) ListShots(ctx context.Context, sequenceName string) ([]types.Shot, error) {
	seq, err := s.resolver.Sequence(ctx, sequenceName)
	if err != nil {
		return nil, err
	}
	return cache.GetList(ctx, s.cache, cache.KindShots, cache.ScopeID(seq.ID), func(ctx context.Context) ([]types.Shot, error) {
		return s.shots.ListBySequence(ctx, nil, seq.ID)
	})
}

// AddSublayer registers sublayerPath on the parent entity's document at the
// strongest position. Paths are stored relative to the entity document's
// directory. Registering an already-present sublayer is a no-op.
func (s *entityService) AddSublayer(ctx context.Context, parent resolve.ParentNames, sublayerPath string) error {
	_, docPath, err := s.resolver.Parent(ctx, parent)
	if err != nil {
		return err
	}

	layer, err := usd.Open(docPath)
	if err != nil {
		return err
	}
	ref, err := usd.RelativeTo(docPath, sublayerPath)
	if err != nil {
		return err
	}
	if !layer.InsertSubLayerFront(ref) {
		return nil
	}
	return layer.Save()
}

func (s *entityService) RemoveSublayer(ctx context.Context, parent resolve.ParentNames, sublayerPath string) error {
	_, docPath, err := s.resolver.Parent(ctx, parent)
	if err != nil {
		return err
	}

	layer, err := usd.Open(docPath)
	if err != nil {
		return err
	}
	ref, err := usd.RelativeTo(docPath, sublayerPath)
	if err != nil {
		return err
	}
	if !layer.RemoveSubLayer(ref) {
		return nil
	}
	return layer.Save()
}

// deleteSubtree removes the entity's on-disk folder. The database row is
// only deleted once the filesystem delete succeeded, so a failure leaves the
// record pointing at the still-present files.
func deleteSubtree(docPath string) error {
	dir := filepath.Dir(docPath)
	if err := os.RemoveAll(dir); err != nil {
		return &pipeerr.FilesystemError{Path: dir, Err: err}
	}
	return nil
}

func (s *entityService) DeleteAsset(ctx context.Context, name string) error {
	asset, err := s.resolver.Asset(ctx, name)
	if err != nil {
		return err
	}
	if err := deleteSubtree(asset.DocumentPath); err != nil {
		return err
	}
	if err := s.assets.DeleteByName(ctx, nil, name); err != nil {
		return fmt.Errorf("delete asset row: %w", err)
	}
	s.cache.Invalidate(cache.KindAssets, cache.RootScope)
	s.log.Info("deleted asset", "name", name)
	return nil
}

func (s *entityService) DeleteSequence(ctx context.Context, name string) error {
	seq, err := s.resolver.Sequence(ctx, name)
	if err != nil {
		return err
	}
	if err := deleteSubtree(seq.DocumentPath); err != nil {
		return err
	}
	if err := s.sequences.DeleteByName(ctx, nil, name); err != nil {
		return fmt.Errorf("delete sequence row: %w", err)
	}
	s.cache.Invalidate(cache.KindSequences, cache.RootScope)
	s.log.Info("deleted sequence", "name", name)
	return nil
}

func (s *entityService) DeleteShot(ctx context.Context, sequenceName, name string) error {
	shot, err := s.resolver.Shot(ctx, sequenceName, name)
	if err != nil {
		return err
	}
	if err := deleteSubtree(shot.DocumentPath); err != nil {
		return err
	}
	if err := s.shots.DeleteByName(ctx, nil, shot.SequenceID, name); err != nil {
		return fmt.Errorf("delete shot row: %w", err)
	}
	s.cache.Invalidate(cache.KindShots, cache.ScopeID(shot.SequenceID))
	s.log.Info("deleted shot", "sequence", sequenceName, "name", name)
	return nil
}
