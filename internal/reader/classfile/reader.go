// Package classfile implements reader.Reader against raw JVM class files
// packed in a zip/jar archive: the only place in jmatch that touches the
// filesystem or a compression codec.
package classfile

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	jmatcherrors "jmatch/internal/errors"
	"jmatch/internal/model"
)

// ClassFileReader reads every .class entry out of a zip/jar archive and
// assembles a model.Environment from them.
type ClassFileReader struct {
	obfuscated model.ObfuscationPredicate
}

// NewClassFileReader builds a reader that derives each symbol's Obfuscated
// flag via pred (nil falls back to model's default prefix set).
func NewClassFileReader(pred model.ObfuscationPredicate) *ClassFileReader {
	return &ClassFileReader{obfuscated: pred}
}

// ReadArchive implements reader.Reader.
func (r *ClassFileReader) ReadArchive(path string) (*model.Environment, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, jmatcherrors.NewJmatchError(jmatcherrors.ArchiveUnreadable, "opening archive", err).WithArchive(path)
	}
	defer zr.Close()

	builder := model.NewBuilder(path, r.obfuscated)
	var parsed []*parsedClass

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		buf, err := readZipEntry(f)
		if err != nil {
			return nil, jmatcherrors.NewJmatchError(jmatcherrors.MalformedClassEntry, "reading "+f.Name, err).WithArchive(path)
		}
		pc, err := parseClassFile(buf)
		if err != nil {
			return nil, jmatcherrors.NewJmatchError(jmatcherrors.MalformedClassEntry, "parsing "+f.Name, err).WithArchive(path)
		}
		parsed = append(parsed, pc)
	}

	for _, pc := range parsed {
		class := builder.AddClass(pc.name, pc.superName, pc.interfaces, pc.accessFlags)
		for _, pf := range pc.fields {
			builder.AddField(class, pf.name, pf.descriptor, pf.accessFlags, pf.initialValue)
		}
		for _, pm := range pc.methods {
			builder.AddMethod(class, pm.name, pm.descriptor, pm.accessFlags, pm.exceptions, pm.instructions, pm.constants)
		}
	}

	return builder.Build(), nil
}

// readZipEntry decompresses one zip entry. Stored (uncompressed) entries
// are read directly; DEFLATEd entries go through klauspost/compress/flate
// rather than the stdlib's compress/flate, matching a real JAR's mix of
// compression methods.
func readZipEntry(f *zip.File) ([]byte, error) {
	switch f.Method {
	case zip.Store:
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	case zip.Deflate:
		raw, err := f.OpenRaw()
		if err != nil {
			return nil, err
		}
		fr := flate.NewReader(raw)
		defer fr.Close()
		return io.ReadAll(fr)
	default:
		return nil, fmt.Errorf("unsupported zip compression method %d for %s", f.Method, f.Name)
	}
}
