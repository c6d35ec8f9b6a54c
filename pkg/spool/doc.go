// Package spool is the request runtime behind upload.Host: it stores received
// files in a private temporary directory under random names, remembers which
// paths it produced, and only moves those.
//
//	sp := spool.New(afero.NewOsFs(), spool.NewMemoryRegistry(),
//		spool.WithMaxFileSize(32<<20),
//	)
//	files, err := sp.FromRequest(ctx, r)
//	if err != nil {
//		return err
//	}
//	defer sp.Release(ctx, files)
//
//	slot, err := upload.New("avatar", files, sp)
//
// Transfer problems (empty field, size limits, disk errors) are reported in
// Descriptor.Code like a web runtime would, so upload.New turns them into
// *upload.TransferError.
//
// The registry decides which paths pass the provenance check. MemoryRegistry
// serves a single process; RedisRegistry shares the set between instances and
// expires entries of abandoned requests.
package spool
