// Package resolveref overrides the checkout ref of a repository with the merge
// commit of the pull request named by a Depends-On line.
package resolveref

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const githubMediaType = "application/vnd.github+json"

// Options are the inputs of one resolution.
type Options struct {
	PRBody     string
	Repository string
	Token      string
	APIURL     string `validate:"required,url"`
}

// PullRequest is the part of the GitHub pull request payload we read.
type PullRequest struct {
	Number         int    `json:"number"`
	Mergeable      *bool  `json:"mergeable"`
	MergeCommitSHA string `json:"merge_commit_sha"`
}

// Resolver looks up Depends-On pull requests.
type Resolver struct {
	logger   lumber.Logger
	requests core.Requests
	validate *validator.Validate
}

// New returns a Resolver calling the GitHub API through requests.
func New(requests core.Requests, logger lumber.Logger) *Resolver {
	return &Resolver{logger: logger, requests: requests, validate: validator.New()}
}

// PullNumber returns the number of the first "Depends-On:" pull request of
// repository in body, 0 when there is none.
func PullNumber(body, repository string) int {
	re := regexp.MustCompile(`(?im)^Depends-On:[ ]*` +
		regexp.QuoteMeta("https://github.com/"+repository+"/pull/") + `(\d+)\s*$`)
	match := re.FindStringSubmatch(body)
	if match == nil {
		return 0
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return number
}

// PullRequest fetches a pull request of repository.
func (r *Resolver) PullRequest(ctx context.Context, opts *Options, number int) (*PullRequest, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/pulls/%d", strings.TrimSuffix(opts.APIURL, "/"), opts.Repository, number)
	body, err := r.requests.MakeAPIRequest(ctx, http.MethodGet, endpoint, nil, opts.Token,
		map[string]string{"Accept": githubMediaType})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get pull request %d of %s", number, opts.Repository)
	}
	pr := new(PullRequest)
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err := json.Unmarshal(body, pr); err != nil {
		return nil, errors.Wrapf(err, "invalid pull request %d payload", number)
	}
	return pr, nil
}

// Resolve returns the merge commit sha of the Depends-On pull request and
// whether one was found. A pull request that cannot be merged is an error.
func (r *Resolver) Resolve(ctx context.Context, opts *Options) (string, bool, error) {
	if err := r.validate.Struct(opts); err != nil {
		return "", false, errs.Configf("invalid resolve-ref options: %v", err)
	}
	if opts.Repository == "" {
		return "", false, nil
	}
	number := PullNumber(opts.PRBody, opts.Repository)
	if number == 0 {
		return "", false, nil
	}
	r.logger.Infof("override checkout with pull request %d of %s", number, opts.Repository)

	pr, err := r.PullRequest(ctx, opts, number)
	if err != nil {
		return "", false, err
	}
	if pr.Mergeable == nil || !*pr.Mergeable {
		return "", false, errors.Wrapf(errs.ErrNotMergeable, "pull request %d from %s", number, opts.Repository)
	}
	r.logger.Infof("merge commit sha for pull request %d => '%s'", number, pr.MergeCommitSHA)
	return pr.MergeCommitSHA, true, nil
}

// Run resolves the override and publishes merge_commit_sha when one is found.
func (r *Resolver) Run(ctx context.Context, opts *Options, output core.OutputWriter) error {
	sha, found, err := r.Resolve(ctx, opts)
	if err != nil || !found {
		return err
	}
	return output.Write(constants.MergeCommitSHAOutputKey, sha)
}
