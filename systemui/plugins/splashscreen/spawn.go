package splashscreen

import (
	"errors"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Spawner starts a process and returns without waiting for it.
//
// There is no result channel: a started renderer cannot be awaited or
// cancelled from here.
type Spawner interface {
	Spawn(argv []string) error
}

type execSpawner struct{}

func (execSpawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return errors.New("spawn: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child whenever it ends.
	go func() { _ = cmd.Wait() }()
	return nil
}

func sentinelPresent(path string) bool {
	return path != "" && unix.Access(path, unix.F_OK) == nil
}
