package utils

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// networkFilesystems are mount types served over the network
var networkFilesystems = map[string]bool{
	"nfs": true, "nfs4": true, "cifs": true, "smbfs": true, "smb2": true,
	"afpfs": true, "webdav": true, "fuse.sshfs": true, "9p": true,
}

// IsNetworkDrive detects if a file path is on a network-mounted drive
func IsNetworkDrive(filePath string) bool {
	// Check Windows UNC paths first, before converting to absolute path
	if strings.HasPrefix(filePath, "//") || strings.HasPrefix(filePath, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}

	if fstype, ok := mountFilesystem(absPath); ok {
		return networkFilesystems[strings.ToLower(fstype)]
	}

	return pathLooksRemote(absPath)
}

// IsNetworkInput checks raw user input before sanitizing collapses a UNC
// prefix, then the resolved path against cwd.
func IsNetworkInput(input, cwd string) bool {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, `\\`) {
		return true
	}
	return IsNetworkDrive(ResolveAndNormalize(SanitizePathInput(raw), cwd))
}

// mountFilesystem returns the filesystem type of the longest mountpoint containing path
func mountFilesystem(path string) (string, bool) {
	partitions, err := disk.Partitions(true)
	if err != nil || len(partitions) == 0 {
		return "", false
	}

	best := ""
	fstype := ""
	for _, p := range partitions {
		if !withinMount(path, p.Mountpoint) {
			continue
		}
		if len(p.Mountpoint) > len(best) {
			best = p.Mountpoint
			fstype = p.Fstype
		}
	}
	return fstype, best != ""
}

func withinMount(path, mountpoint string) bool {
	if mountpoint == "" {
		return false
	}
	rel, err := filepath.Rel(mountpoint, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// pathLooksRemote is the fallback when mount information is unavailable
func pathLooksRemote(absPath string) bool {
	// Check common network mount prefixes on different platforms
	networkPrefixes := []string{
		"/mnt/",     // Linux NFS/SMB mounts
		"/media/",   // Linux removable/network media
		"/Volumes/", // macOS network volumes
	}

	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	lowerPath := strings.ToLower(absPath)
	for _, indicator := range []string{"nfs", "cifs", "smb", "webdav", "ftp", "sftp"} {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}

	return false
}
