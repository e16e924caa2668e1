package product

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/Sammk21/ecommerce-admin/internal/auth"
	"github.com/Sammk21/ecommerce-admin/internal/catalog"
	"github.com/Sammk21/ecommerce-admin/internal/storage"
)

// Catalog is the subset of remote catalog operations the service needs.
type Catalog interface {
	List(ctx context.Context, cred auth.Credential, params catalog.ListParams) catalog.ListResult
	Get(ctx context.Context, cred auth.Credential, id string) (*catalog.Product, error)
	Create(ctx context.Context, cred auth.Credential, rec catalog.Record) error
	Update(ctx context.Context, cred auth.Credential, id string, rec catalog.Record) error
	Delete(ctx context.Context, cred auth.Credential, id string) error
}

// Service orchestrates product operations against the remote catalog and the
// blob store. One instance serves all sessions; each call operates only on
// its own arguments.
type Service struct {
	catalog Catalog
	blobs   storage.BlobStore
}

// NewService creates a new product Service.
func NewService(cat Catalog, blobs storage.BlobStore) *Service {
	return &Service{catalog: cat, blobs: blobs}
}

// List returns one page of products. It never fails — the catalog client
// degrades to an empty page on any error.
func (s *Service) List(ctx context.Context, cred auth.Credential, params catalog.ListParams) catalog.ListResult {
	return s.catalog.List(ctx, cred, params)
}

// Get returns a single product, catalog.ErrNotFound when it does not exist.
func (s *Service) Get(ctx context.Context, cred auth.Credential, id string) (*catalog.Product, error) {
	return s.catalog.Get(ctx, cred, id)
}

// Delete removes a product from the catalog. Blobs referenced by the product
// are left in place, matching the catalog's ownership of the record.
func (s *Service) Delete(ctx context.Context, cred auth.Credential, id string) error {
	return s.catalog.Delete(ctx, cred, id)
}

// Create uploads the session's new images, validates the candidate record,
// and submits it to the catalog. When the catalog rejects the create, every
// image uploaded for it is compensated with a best-effort deletion — a brand
// new product must not leave blobs attached to nothing. Validation failures
// do not trigger compensation.
func (s *Service) Create(ctx context.Context, cred auth.Credential, session *EditSession) error {
	uploaded := s.uploadBatch(ctx, session.NewFiles)

	final := assembleImages(session.KeptImageURLs, uploaded)
	rec, verr := validateRecord(session.Name, session.Price, final)
	if verr != nil {
		return verr
	}

	if err := s.catalog.Create(ctx, cred, rec); err != nil {
		ids := make([]string, len(uploaded))
		for i, obj := range uploaded {
			ids[i] = obj.PublicID
		}
		s.deleteBatch(ctx, ids)
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update reconciles the edit session against the catalog's current image set
// and submits the result:
//
//  1. fetch the authoritative baseline (never trust the client's copy)
//  2. delete baseline images the user dropped, concurrently, best-effort
//  3. upload new files, concurrently; failed uploads are dropped
//  4. validate kept ++ uploaded and submit
//
// Blobs uploaded before a validation or catalog failure are not rolled back;
// the product still exists and a resubmission reuses the same final list.
func (s *Service) Update(ctx context.Context, cred auth.Credential, id string, session *EditSession) error {
	current, err := s.catalog.Get(ctx, cred, id)
	if err != nil {
		return fmt.Errorf("fetch current product: %w", err)
	}

	s.deleteBatch(ctx, removedIDs(current.Images, session.KeptImageURLs))
	uploaded := s.uploadBatch(ctx, session.NewFiles)

	final := assembleImages(session.KeptImageURLs, uploaded)
	rec, verr := validateRecord(session.Name, session.Price, final)
	if verr != nil {
		return verr
	}

	if err := s.catalog.Update(ctx, cred, id, rec); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// removedIDs computes the deletion set: public IDs present in the baseline
// but absent from the kept URLs. URLs that do not match the store's
// convention are skipped — there is nothing addressable to delete.
func removedIDs(baseline, kept []string) []string {
	keptSet := make(map[string]bool, len(kept))
	for _, url := range kept {
		if id := storage.ExtractPublicID(url); id != "" {
			keptSet[id] = true
		}
	}

	var removed []string
	for _, url := range baseline {
		id := storage.ExtractPublicID(url)
		if id == "" || keptSet[id] {
			continue
		}
		removed = append(removed, id)
	}
	return removed
}

// assembleImages builds the final image list: kept URLs first, then the new
// uploads, each half in its original order, duplicates dropped.
func assembleImages(kept []string, uploaded []storage.Object) []string {
	seen := make(map[string]bool, len(kept)+len(uploaded))
	final := make([]string, 0, len(kept)+len(uploaded))

	add := func(url string) {
		key := url
		if id := storage.ExtractPublicID(url); id != "" {
			key = id
		}
		if seen[key] {
			return
		}
		seen[key] = true
		final = append(final, url)
	}

	for _, url := range kept {
		add(url)
	}
	for _, obj := range uploaded {
		add(obj.URL)
	}
	return final
}

// uploadBatch uploads all files concurrently and returns the successes in
// input order. A failed upload drops that file from the submission instead of
// aborting the batch.
func (s *Service) uploadBatch(ctx context.Context, files []File) []storage.Object {
	if len(files) == 0 {
		return nil
	}

	slots := make([]*storage.Object, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			obj, err := s.uploadOne(gctx, f)
			if err != nil {
				log.Printf("product: upload %q failed: %v", f.Name, err)
				return nil
			}
			slots[i] = obj
			return nil
		})
	}
	_ = g.Wait()

	uploaded := make([]storage.Object, 0, len(files))
	for _, obj := range slots {
		if obj != nil {
			uploaded = append(uploaded, *obj)
		}
	}
	return uploaded
}

func (s *Service) uploadOne(ctx context.Context, f File) (*storage.Object, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()
	return s.blobs.Upload(ctx, f.Name, rc, f.Size, f.ContentType)
}

// deleteBatch removes blobs concurrently. Each deletion is independent and
// best-effort: failures are logged and never block the rest of the batch or
// the flow that follows it.
func (s *Service) deleteBatch(ctx context.Context, publicIDs []string) {
	if len(publicIDs) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range publicIDs {
		id := id
		g.Go(func() error {
			if res := s.blobs.Delete(gctx, id); !res.Deleted {
				log.Printf("product: delete blob %q failed: %v", id, res.Err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
