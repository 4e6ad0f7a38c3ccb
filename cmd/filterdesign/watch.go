package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-filterdesign/design/csvfile"
)

func runWatch(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "watch", "")
	configPath := fs.String("config", "", "YAML design file to watch (required)")
	output := fs.String("o", "", "output CSV file (default: output from the YAML file)")

	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *configPath == "" || fs.NArg() > 0 {
		fs.Usage()
		return errUsage
	}

	return watch(ctx, e, *configPath, *output, nil)
}

// watch designs the filter in path once and again after every change to
// the file, until ctx is done. Each written output path is sent on
// designed when it is not nil. Design errors are logged and the previous
// output is left in place.
func watch(ctx context.Context, e *env, path, output string, designed chan<- string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	redesign := func() {
		out, err := redesignFile(path, output)
		if err != nil {
			e.log.Printf("%s: %v", path, err)
			return
		}

		e.log.Printf("wrote %s", out)

		if designed != nil {
			select {
			case designed <- out:
			case <-ctx.Done():
			}
		}
	}

	redesign()

	name := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != name || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			e.debugf("%s: %s", event.Op, event.Name)
			redesign()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			e.log.Printf("watch error: %v", err)
		}
	}
}

func redesignFile(path, output string) (string, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return "", err
	}

	if output == "" {
		output = cfg.Output
	}

	if output == "" {
		return "", fmt.Errorf("%w: no output file (set output in the file or pass -o)", errConfig)
	}

	rec, err := designRecord(cfg)
	if err != nil {
		return "", err
	}

	if err := csvfile.Save(output, rec); err != nil {
		return "", err
	}

	return output, nil
}
