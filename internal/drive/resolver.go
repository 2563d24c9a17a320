package drive

import "context"

// Resolver provides get-or-create semantics over the remote folder tree.
// Every call re-queries the store; nothing is cached between requests, so
// a folder deleted out from under us is simply recreated next time.
//
// Two concurrent callers resolving the same missing folder can both miss
// the list and both create, leaving duplicate siblings. The store does not
// enforce name uniqueness and neither do we.
type Resolver struct {
	client Client
}

func NewResolver(client Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve returns the ID of an existing folder matching (name, parentID),
// creating it when no match exists. With multiple matches the first listed
// wins; the store's result ordering is not guaranteed stable.
func (r *Resolver) Resolve(ctx context.Context, name, parentID string) (string, error) {
	folders, err := r.client.ListFolders(ctx, name, parentID)
	if err != nil {
		return "", err
	}
	if len(folders) > 0 {
		return folders[0].ID, nil
	}

	created, err := r.client.CreateFolder(ctx, name, parentID)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// ResolvePath resolves a chain of nested folders, each level parented by
// the previous one, and returns the ID of the deepest folder.
func (r *Resolver) ResolvePath(ctx context.Context, names ...string) (string, error) {
	parentID := ""
	for _, name := range names {
		id, err := r.Resolve(ctx, name, parentID)
		if err != nil {
			return "", err
		}
		parentID = id
	}
	return parentID, nil
}
