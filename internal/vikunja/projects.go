package vikunja

import (
	"context"
	"fmt"
)

// ListProjects returns the caller's projects. A single page of 100 covers
// the realistic case; Vikunja returns an empty array past the last page.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, "GET", "/projects", pageQuery(1, taskPageSize), nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// FindProject resolves a project by title, case-insensitively.
func (c *Client) FindProject(ctx context.Context, name string) (*Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	want := normalizeTitle(name)
	for i := range projects {
		if normalizeTitle(projects[i].Title) == want {
			return &projects[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "project", Name: name}
}

// ListViews returns all views of a project.
func (c *Client) ListViews(ctx context.Context, projectID int64) ([]View, error) {
	var views []View
	path := fmt.Sprintf("/projects/%d/views", projectID)
	if err := c.do(ctx, "GET", path, nil, nil, &views); err != nil {
		return nil, fmt.Errorf("failed to list views for project %d: %w", projectID, err)
	}
	return views, nil
}

// FindView resolves a project view by title, case-insensitively.
func (c *Client) FindView(ctx context.Context, projectID int64, name string) (*View, error) {
	views, err := c.ListViews(ctx, projectID)
	if err != nil {
		return nil, err
	}
	want := normalizeTitle(name)
	for i := range views {
		if normalizeTitle(views[i].Title) == want {
			return &views[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "view", Name: name}
}

// ListBuckets returns the kanban buckets of a view.
func (c *Client) ListBuckets(ctx context.Context, projectID, viewID int64) ([]Bucket, error) {
	var buckets []Bucket
	path := fmt.Sprintf("/projects/%d/views/%d/buckets", projectID, viewID)
	if err := c.do(ctx, "GET", path, nil, nil, &buckets); err != nil {
		return nil, fmt.Errorf("failed to list buckets for view %d: %w", viewID, err)
	}
	return buckets, nil
}

// FindBucket resolves a bucket by title, case-insensitively.
func (c *Client) FindBucket(ctx context.Context, projectID, viewID int64, name string) (*Bucket, error) {
	buckets, err := c.ListBuckets(ctx, projectID, viewID)
	if err != nil {
		return nil, err
	}
	want := normalizeTitle(name)
	for i := range buckets {
		if normalizeTitle(buckets[i].Title) == want {
			return &buckets[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "bucket", Name: name}
}
