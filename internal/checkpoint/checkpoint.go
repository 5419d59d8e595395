// Package checkpoint mirrors training checkpoints between the local
// filesystem and remote object storage.
//
// Remote keys have the shape <run>/checkpoint-<step>/<relative path>, with
// forward slashes regardless of platform.
package checkpoint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ekisa-team/ckmirror/internal/storage"
)

const dirPrefix = "checkpoint-"

// DirName returns the checkpoint directory name for a training step.
func DirName(step int) string {
	return dirPrefix + strconv.Itoa(step)
}

// ParseStep extracts the training step from a checkpoint directory name.
func ParseStep(name string) (int, bool) {
	digits, found := strings.CutPrefix(name, dirPrefix)
	if !found || digits == "" {
		return 0, false
	}

	step, err := strconv.Atoi(digits)
	if err != nil || step < 0 {
		return 0, false
	}

	return step, true
}

// SplitKey splits a remote key into its run name, checkpoint directory name
// and file path relative to the checkpoint directory. Keys with fewer than
// three segments do not belong to any checkpoint directory.
func SplitKey(key string) (runName, dir, rel string, ok bool) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}

	return parts[0], parts[1], parts[2], true
}

// sortObjects orders objects by ascending LastModified, breaking ties by
// lexicographic key so selection is deterministic.
func sortObjects(objects []storage.ObjectInfo) {
	sort.Slice(objects, func(i, j int) bool {
		if objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].Key < objects[j].Key
		}
		return objects[i].LastModified.Before(objects[j].LastModified)
	})
}

// newestGroup returns the run and directory name of the most recently
// modified object with a well-formed key. Objects must already be sorted.
func newestGroup(objects []storage.ObjectInfo) (runName, dir string, ok bool) {
	for i := len(objects) - 1; i >= 0; i-- {
		if r, d, _, valid := SplitKey(objects[i].Key); valid {
			return r, d, true
		}
	}

	return "", "", false
}

// groupMembers selects the objects belonging to exactly the given run and
// checkpoint directory. Membership is decided by path-segment equality, so
// checkpoint-1 never captures checkpoint-10.
func groupMembers(objects []storage.ObjectInfo, runName, dir string) []storage.ObjectInfo {
	var members []storage.ObjectInfo
	for _, obj := range objects {
		if r, d, _, ok := SplitKey(obj.Key); ok && r == runName && d == dir {
			members = append(members, obj)
		}
	}

	return members
}
