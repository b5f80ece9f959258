package compiler

import (
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/zerr"
)

// lookup returns the stored entry of root if it is still valid for files.
// Store errors are logged and treated as a miss.
func (c *Compiler) lookup(root *domain.SourceFile, files *domain.FileSet) *domain.CacheEntry {
	entry, err := c.store.Get(domain.CacheSlot(root))
	if err != nil {
		c.logger.Warn(zerr.With(zerr.Wrap(err, "cache lookup failed"), "root", root.Path).Error())
		return nil
	}
	if entry == nil || !entry.Valid(root, files) {
		return nil
	}
	return entry
}

// remember stores a successful result of root. A failed write only costs a future recompile.
func (c *Compiler) remember(
	root *domain.SourceFile,
	referenced []string,
	files *domain.FileSet,
	result domain.CompileResult,
) domain.CacheEntry {
	entry := domain.NewCacheEntry(root, referenced, files, result)
	if err := c.store.Put(domain.CacheSlot(root), entry, entry.Size()); err != nil {
		c.logger.Warn(zerr.With(zerr.Wrap(err, "cache store failed"), "root", root.Path).Error())
	}
	return entry
}
