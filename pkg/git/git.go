// Package git discovers the local repository and its origin coordinates.
package git

import (
	"github.com/go-git/go-git/v5"
	giturl "github.com/kubescape/go-git-url"
)

// GetLocalRepo opens the repository containing path, walking up parent
// directories to find the .git directory.
func GetLocalRepo(path string) (*git.Repository, error) {
	localRepo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: false,
	})
	if err != nil {
		return nil, err
	}

	return localRepo, nil
}

// RepoInfo describes a local repository and the coordinates of its remote.
type RepoInfo struct {
	LocalWorktreePath string
	RepoUrl           string
	RepoOwner         string
	RepoName          string
	RepoHost          string
}

// GetRepoInfo returns the worktree path and the owner/name/host parsed from
// the remote URL. A repository without a usable remote yields an empty
// RepoInfo and no error.
func GetRepoInfo(localRepo *git.Repository) (RepoInfo, error) {
	localRepoWorktree, err := localRepo.Worktree()
	if err != nil {
		return RepoInfo{}, err
	}

	repoUrl := remoteURL(localRepo)
	if repoUrl == "" {
		return RepoInfo{}, nil
	}

	gitURL, err := giturl.NewGitURL(repoUrl)
	if err != nil {
		return RepoInfo{}, err
	}

	response := RepoInfo{
		LocalWorktreePath: localRepoWorktree.Filesystem.Root(),
		RepoUrl:           repoUrl,
		RepoOwner:         gitURL.GetOwnerName(),
		RepoName:          gitURL.GetRepoName(),
		RepoHost:          gitURL.GetHostName(),
	}

	return response, nil
}

// remoteURL returns the first URL of the origin remote, falling back to the
// first configured remote.
func remoteURL(repo *git.Repository) string {
	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			return urls[0]
		}
	}

	remotes, err := repo.Remotes()
	if err != nil || len(remotes) == 0 {
		return ""
	}

	if urls := remotes[0].Config().URLs; len(urls) > 0 {
		return urls[0]
	}

	return ""
}
