package archivecache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"jmatch/internal/model"
	"jmatch/internal/reader"
)

// CachingReader wraps an inner reader.Reader with a content-hash-keyed
// cache: ReadArchive hashes the archive's bytes, serves a hit straight from
// the cache, and otherwise delegates to inner and stores the result.
type CachingReader struct {
	inner      reader.Reader
	cache      *Cache
	obfuscated model.ObfuscationPredicate
}

// NewCachingReader builds a CachingReader. pred is applied when
// reconstructing a cached environment, so it should match whatever
// predicate inner itself uses.
func NewCachingReader(inner reader.Reader, cache *Cache, pred model.ObfuscationPredicate) *CachingReader {
	return &CachingReader{inner: inner, cache: cache, obfuscated: pred}
}

// ReadArchive implements reader.Reader.
func (r *CachingReader) ReadArchive(path string) (*model.Environment, error) {
	hash, err := hashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hashing archive %s: %w", path, err)
	}

	if cached, ok, err := r.cache.get(hash); err != nil {
		return nil, err
	} else if ok {
		dto, err := unmarshalEnvironmentDTO(cached)
		if err != nil {
			return nil, err
		}
		return fromDTO(dto, r.obfuscated), nil
	}

	env, err := r.inner.ReadArchive(path)
	if err != nil {
		return nil, err
	}

	envJSON, err := marshalEnvironmentDTO(toDTO(env))
	if err != nil {
		return nil, err
	}
	if err := r.cache.set(hash, path, envJSON); err != nil {
		return nil, err
	}
	return env, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
