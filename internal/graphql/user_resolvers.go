package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/mfimia/reddit-clone/internal/service"
	"github.com/mfimia/reddit-clone/internal/session"
)

var errNoSession = errors.New("no session in context")

func sessionFrom(p graphql.ResolveParams) (session.Session, error) {
	sess, ok := session.FromContext(p.Context)
	if !ok {
		return nil, errNoSession
	}
	return sess, nil
}

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	sess, err := sessionFrom(p)
	if err != nil {
		return nil, err
	}
	user, err := r.auth.Me(p.Context, sess)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	sess, err := sessionFrom(p)
	if err != nil {
		return nil, err
	}
	options, ok := p.Args["options"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid options")
	}
	input := service.RegisterInput{
		Username: stringArg(options, "username"),
		Email:    stringArg(options, "email"),
		Password: stringArg(options, "password"),
	}
	return r.auth.Register(p.Context, sess, input)
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	sess, err := sessionFrom(p)
	if err != nil {
		return nil, err
	}
	return r.auth.Login(p.Context, sess, stringArg(p.Args, "usernameOrEmail"), stringArg(p.Args, "password"))
}

func (r *Resolver) resolveLogout(p graphql.ResolveParams) (interface{}, error) {
	sess, err := sessionFrom(p)
	if err != nil {
		return nil, err
	}
	return r.auth.Logout(p.Context, sess), nil
}

func (r *Resolver) resolveForgotPassword(p graphql.ResolveParams) (interface{}, error) {
	return r.auth.ForgotPassword(p.Context, stringArg(p.Args, "email"))
}

func (r *Resolver) resolveChangePassword(p graphql.ResolveParams) (interface{}, error) {
	sess, err := sessionFrom(p)
	if err != nil {
		return nil, err
	}
	return r.auth.ChangePassword(p.Context, sess, stringArg(p.Args, "token"), stringArg(p.Args, "newPassword"))
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}
