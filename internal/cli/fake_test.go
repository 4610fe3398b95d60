package cli

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/roach88/o365ctl/internal/directory"
)

// fakeSession is a canned directory session: no prompts, no network.
type fakeSession struct {
	guids    map[string]string // principal -> mailbox GUID
	quotas   map[string]directory.Quota
	orgName  string
	orgErr   error
	updates  []string
	licensed []string
}

func (f *fakeSession) Lookup(_ context.Context, principal string) (directory.User, error) {
	g, ok := f.guids[principal]
	if !ok {
		return directory.User{}, &directory.LookupError{Principal: principal, NotFound: true}
	}
	return directory.User{PrincipalName: principal, MailboxGUID: g}, nil
}

func (f *fakeSession) SetMailboxGUID(_ context.Context, principal, guid string) error {
	f.updates = append(f.updates, principal)
	f.guids[principal] = guid
	return nil
}

func (f *fakeSession) DriveQuota(_ context.Context, principal string) (directory.Quota, error) {
	q, ok := f.quotas[principal]
	if !ok {
		return directory.Quota{}, &directory.LookupError{Principal: principal, NotFound: true}
	}
	return q, nil
}

func (f *fakeSession) AssignLicense(_ context.Context, principal string, _ uuid.UUID) error {
	f.licensed = append(f.licensed, principal)
	return nil
}

func (f *fakeSession) OrganizationName(_ context.Context) (string, error) {
	if f.orgErr != nil {
		return "", f.orgErr
	}
	return f.orgName, nil
}

// fakeProvider hands out a prepared session, or fails like a bad sign-in.
type fakeProvider struct {
	session *fakeSession
	err     error
}

func (p fakeProvider) Connect(context.Context) (directory.Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

var errAuthDenied = errors.New("AADSTS50126: invalid credentials")
