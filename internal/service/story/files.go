package story

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob"
	"github.com/heartmarshall/storyline-backend/internal/domain"
)

// storeFiles uploads new file payloads and verifies retained keys, returning
// the snapshots as persisted references.
func (s *Service) storeFiles(ctx context.Context, in []SnapshotInput) ([]domain.Snapshot, error) {
	out := make([]domain.Snapshot, len(in))
	for si, snap := range in {
		files := make([]domain.File, 0, len(snap.Files))
		for fi, f := range snap.Files {
			ref, err := s.storeFile(ctx, f)
			if errors.Is(err, blob.ErrNotFound) {
				return nil, domain.NewValidationError(
					fmt.Sprintf("%s[%d].key", fieldIndex(si, "files"), fi), "unknown file",
				)
			}
			if err != nil {
				return nil, err
			}
			files = append(files, ref)
		}
		out[si] = domain.Snapshot{Heading: snap.Heading, Content: snap.Content, Files: files}
	}
	return out, nil
}

func (s *Service) storeFile(ctx context.Context, f FileInput) (domain.File, error) {
	if len(f.Data) == 0 {
		info, err := s.blobs.Head(ctx, f.Key)
		if err != nil {
			return domain.File{}, fmt.Errorf("head blob %s: %w", f.Key, err)
		}
		return domain.File{Name: f.Name, MimeType: f.MimeType, Key: info.Key, Size: info.Size}, nil
	}

	info, err := s.blobs.Put(ctx, blob.ContentKey(f.Data), f.Data, f.MimeType)
	if err != nil {
		return domain.File{}, fmt.Errorf("put blob: %w", err)
	}
	return domain.File{Name: f.Name, MimeType: f.MimeType, Key: info.Key, Size: info.Size}, nil
}

// loadFiles resolves file payloads for every snapshot, fetching blobs in
// parallel. Missing blobs leave Data nil.
func (s *Service) loadFiles(ctx context.Context, snaps []domain.Snapshot) ([]domain.SnapshotView, error) {
	out := make([]domain.SnapshotView, len(snaps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.FetchParallel, 1))

	for si, snap := range snaps {
		out[si] = domain.SnapshotView{
			Heading: snap.Heading,
			Content: snap.Content,
			Files:   make([]domain.FilePayload, len(snap.Files)),
		}
		for fi, f := range snap.Files {
			out[si].Files[fi].File = f
			g.Go(func() error {
				data, err := s.blobs.Get(gctx, f.Key)
				if errors.Is(err, blob.ErrNotFound) {
					s.log.WarnContext(gctx, "snapshot file missing", slog.String("key", f.Key))
					return nil
				}
				if err != nil {
					return fmt.Errorf("get blob %s: %w", f.Key, err)
				}
				out[si].Files[fi].Data = data
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
