package models

// Typed payloads for each recognized event kind. The feed frequently
// delivers partial payloads (sometimes little more than a URL), so every
// field here tolerates absence: optional scalars are pointers and missing
// lists stay nil.

// IssueRecord is the issue sub-record embedded in issue and comment payloads.
type IssueRecord struct {
	ID          int64           `json:"id"`
	Number      *int            `json:"number"`
	Title       string          `json:"title"`
	State       string          `json:"state"`
	Body        string          `json:"body"`
	HTMLURL     string          `json:"html_url"`
	UpdatedAt   string          `json:"updated_at"`
	ClosedAt    string          `json:"closed_at"`
	Labels      []Label         `json:"labels"`
	User        *User           `json:"user"`
	Assignee    *User           `json:"assignee"`
	Assignees   []User          `json:"assignees"`
	PullRequest *PullRequestRef `json:"pull_request"`
}

// PullRequestRecord is the pull_request sub-record. The feed may reduce it
// to almost nothing, occasionally just an API URL.
type PullRequestRecord struct {
	ID        int64   `json:"id"`
	Number    *int    `json:"number"`
	Title     *string `json:"title"`
	State     string  `json:"state"`
	Body      string  `json:"body"`
	HTMLURL   string  `json:"html_url"`
	URL       string  `json:"url"`
	UpdatedAt string  `json:"updated_at"`
	ClosedAt  string  `json:"closed_at"`
	MergedAt  string  `json:"merged_at"`
	Merged    bool    `json:"merged"`
	Labels    []Label `json:"labels"`
	User      *User   `json:"user"`
	Assignee  *User   `json:"assignee"`
	Assignees []User  `json:"assignees"`
}

// CommentRecord is the comment sub-record of comment-bearing payloads.
type CommentRecord struct {
	ID        int64  `json:"id"`
	HTMLURL   string `json:"html_url"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	User      *User  `json:"user"`
}

// ReviewRecord is the review sub-record of review payloads.
type ReviewRecord struct {
	ID          int64  `json:"id"`
	State       string `json:"state"`
	Body        string `json:"body"`
	HTMLURL     string `json:"html_url"`
	SubmittedAt string `json:"submitted_at"`
	User        *User  `json:"user"`
}

// IssuesPayload is the payload of an IssuesEvent.
type IssuesPayload struct {
	Action string       `json:"action"`
	Issue  *IssueRecord `json:"issue"`
}

// PullRequestPayload is the payload of a PullRequestEvent. Number and
// Labels exist at payload level on some feed variants, mirroring fields
// the pull_request sub-record may lack.
type PullRequestPayload struct {
	Action      string             `json:"action"`
	Number      *int               `json:"number"`
	Labels      []Label            `json:"labels"`
	PullRequest *PullRequestRecord `json:"pull_request"`
}

// ReviewPayload is the payload of a PullRequestReviewEvent.
type ReviewPayload struct {
	Action      string             `json:"action"`
	Review      *ReviewRecord      `json:"review"`
	PullRequest *PullRequestRecord `json:"pull_request"`
}

// IssueCommentPayload is the payload of an IssueCommentEvent.
type IssueCommentPayload struct {
	Action  string         `json:"action"`
	Comment *CommentRecord `json:"comment"`
	Issue   *IssueRecord   `json:"issue"`
}

// ReviewCommentPayload is the payload of a PullRequestReviewCommentEvent.
type ReviewCommentPayload struct {
	Action      string             `json:"action"`
	Comment     *CommentRecord     `json:"comment"`
	PullRequest *PullRequestRecord `json:"pull_request"`
}

// PushCommit is one commit inside a push payload.
type PushCommit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// PushPayload is the payload of a PushEvent.
type PushPayload struct {
	Ref          string       `json:"ref"`
	Head         string       `json:"head"`
	Before       string       `json:"before"`
	Size         *int         `json:"size"`
	DistinctSize *int         `json:"distinct_size"`
	Commits      []PushCommit `json:"commits"`
}

// CreatePayload is the payload of a CreateEvent.
type CreatePayload struct {
	Ref          string `json:"ref"`
	RefType      string `json:"ref_type"`
	MasterBranch string `json:"master_branch"`
	Description  string `json:"description"`
}

// DeletePayload is the payload of a DeleteEvent.
type DeletePayload struct {
	Ref     string `json:"ref"`
	RefType string `json:"ref_type"`
}

// Forkee is the destination repository of a fork.
type Forkee struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// ForkPayload is the payload of a ForkEvent.
type ForkPayload struct {
	Forkee *Forkee `json:"forkee"`
}

// WatchPayload is the payload of a WatchEvent.
type WatchPayload struct {
	Action string `json:"action"`
}

// GollumPage is one wiki page entry of a gollum payload.
type GollumPage struct {
	PageName string `json:"page_name"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	HTMLURL  string `json:"html_url"`
}

// GollumPayload is the payload of a GollumEvent.
type GollumPayload struct {
	Pages []GollumPage `json:"pages"`
}
