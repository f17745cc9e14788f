package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/mfimia/reddit-clone/internal/service"
)

var errNotAuthenticated = errors.New("not authenticated")

func (r *Resolver) resolvePosts(p graphql.ResolveParams) (interface{}, error) {
	limit, _ := p.Args["limit"].(int)
	var cursor *string
	if raw, ok := p.Args["cursor"].(string); ok {
		cursor = &raw
	}
	return r.posts.List(p.Context, limit, cursor)
}

func (r *Resolver) resolvePost(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(int)
	post, err := r.posts.Get(p.Context, uint(id))
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	return post, nil
}

func (r *Resolver) resolveCreatePost(p graphql.ResolveParams) (interface{}, error) {
	sess, err := sessionFrom(p)
	if err != nil {
		return nil, err
	}
	// Authentication failure, checked before anything touches storage.
	if sess.UserID() == 0 {
		return nil, errNotAuthenticated
	}
	raw, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid input")
	}
	input := service.PostInput{
		Title: stringArg(raw, "title"),
		Text:  stringArg(raw, "text"),
	}
	return r.posts.Create(p.Context, sess.UserID(), input)
}

func (r *Resolver) resolveUpdatePost(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(int)
	// Absent and explicitly empty titles are different things: only a
	// supplied title overwrites.
	var title *string
	if raw, ok := p.Args["title"].(string); ok {
		title = &raw
	}
	post, err := r.posts.Update(p.Context, uint(id), title)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	return post, nil
}

func (r *Resolver) resolveDeletePost(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(int)
	return r.posts.Delete(p.Context, uint(id)), nil
}
