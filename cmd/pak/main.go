// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// pak creates and extracts the asset archives the renderer can load
// shaders and textures from.
package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vkt/hellovk/asset"
)

var (
	version  = flag.Int64("version", 1, "Archive version number to create it with")
	extract  = flag.String("e", "", "Extract the named archive into the current directory")
	compress = flag.String("c", "", "Compress the given file/folder")
	dstFile  = flag.String("f", "out.pak", "Destination file")
)

func main() {
	flag.Parse()

	if *extract != "" && *compress != "" {
		log.Fatal("only one operation at a time")
	}

	switch {
	case *extract != "":
		if err := extractFiles(); err != nil {
			log.WithError(err).Fatal("extraction failed")
		}
	case *compress != "":
		if err := compressFiles(); err != nil {
			log.WithError(err).Fatal("compression failed")
		}
	default:
		flag.PrintDefaults()
	}
}

func compressFiles() error {
	if _, err := os.Stat(*dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	dst, err := os.Create(*dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	builder := asset.NewBuilder(asset.Header{
		CreatedAt: time.Now().Unix(),
		Version:   *version,
	})

	err = filepath.Walk(*compress, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		name, err := filepath.Rel(*compress, path)
		if err != nil {
			return err
		}
		log.WithField("entry", name).Info("adding")
		return builder.Add(filepath.ToSlash(name), f)
	})
	if err != nil {
		return err
	}

	_, err = builder.WriteTo(dst)
	return err
}

func extractFiles() error {
	src, err := os.Open(*extract)
	if err != nil {
		return err
	}
	defer src.Close()

	pak, err := asset.OpenPak(src)
	if err != nil {
		return err
	}

	for _, entry := range pak.Header().Index {
		r, err := pak.Open(entry.Name)
		if err != nil {
			return err
		}

		path, err := entryPath(entry.Name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.WithField("entry", entry.Name).Info("extracted")
	}
	return nil
}

// entryPath maps an archive entry name onto a path below the current
// directory. Absolute names and names reaching upwards through ".."
// are rejected so a crafted archive cannot write outside of it.
func entryPath(name string) (string, error) {
	path := filepath.FromSlash(name)
	if filepath.IsAbs(path) {
		return "", errors.New("refusing absolute entry name: " + name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", errors.New("refusing entry name outside archive root: " + name)
		}
	}
	return path, nil
}
