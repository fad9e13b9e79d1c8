// Package inmemdb provides map-backed repository implementations used in
// tests and local development without a running MongoDB.
package inmemdb

import (
	"sync"

	"github.com/buildbytes/lms/core/certificate"
	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/message"
	"github.com/buildbytes/lms/core/resource"
	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
)

type DB struct {
	mutex sync.RWMutex

	users        map[string]*user.User
	categories   map[string]*course.SubjectCategory
	projects     map[string]*course.Project
	tasks        map[string]*course.Task
	submissions  map[string]*submission.Submission
	resources    map[string]*resource.Resource
	messages     map[string]*message.Message
	certificates map[string]*certificate.Certificate
}

func NewDB() *DB {
	db := new(DB)
	db.Reset()
	return db
}

// Reset drops all stored documents.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.users = make(map[string]*user.User)
	db.categories = make(map[string]*course.SubjectCategory)
	db.projects = make(map[string]*course.Project)
	db.tasks = make(map[string]*course.Task)
	db.submissions = make(map[string]*submission.Submission)
	db.resources = make(map[string]*resource.Resource)
	db.messages = make(map[string]*message.Message)
	db.certificates = make(map[string]*certificate.Certificate)
}
