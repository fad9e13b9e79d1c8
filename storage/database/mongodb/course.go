package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildbytes/lms/core/course"
)

type courseRepository struct {
	categories *mongo.Collection
	projects   *mongo.Collection
	tasks      *mongo.Collection
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *mongo.Database) *courseRepository {
	return &courseRepository{
		categories: db.Collection("subject_categories"),
		projects:   db.Collection("projects"),
		tasks:      db.Collection("tasks"),
	}
}

// Categories

func (repo *courseRepository) CreateCategory(ctx context.Context, cat course.SubjectCategory) (course.SubjectCategory, error) {
	if _, err := repo.categories.InsertOne(ctx, cat); err != nil {
		return course.SubjectCategory{}, errors.Wrap(err, "inserting category")
	}
	return cat, nil
}

func (repo *courseRepository) QueryCategories(ctx context.Context) ([]course.SubjectCategory, error) {
	cursor, err := repo.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	cats := make([]course.SubjectCategory, 0)
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, errors.Wrap(err, "decoding categories")
	}
	return cats, nil
}

func (repo *courseRepository) GetCategoryByID(ctx context.Context, id string) (course.SubjectCategory, error) {
	var cat course.SubjectCategory
	if err := repo.categories.FindOne(ctx, bson.M{"id": id}).Decode(&cat); err != nil {
		if err == mongo.ErrNoDocuments {
			return course.SubjectCategory{}, course.ErrCategoryNotFound
		}
		return course.SubjectCategory{}, errors.Wrap(err, "finding category")
	}
	return cat, nil
}

func (repo *courseRepository) UpdateCategory(ctx context.Context, id string, uc course.UpdateCategory) (course.SubjectCategory, error) {
	fields := bson.M{}
	if uc.Name != nil {
		fields["name"] = *uc.Name
	}
	if uc.Description != nil {
		fields["description"] = *uc.Description
	}
	if uc.Color != nil {
		fields["color"] = *uc.Color
	}
	if uc.Icon != nil {
		fields["icon"] = *uc.Icon
	}
	if len(fields) > 0 {
		res, err := repo.categories.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
		if err != nil {
			return course.SubjectCategory{}, errors.Wrap(err, "updating category")
		}
		if res.MatchedCount == 0 {
			return course.SubjectCategory{}, course.ErrCategoryNotFound
		}
	}
	return repo.GetCategoryByID(ctx, id)
}

func (repo *courseRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := repo.categories.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(err, "deleting category")
	}
	if res.DeletedCount == 0 {
		return course.ErrCategoryNotFound
	}
	return nil
}

func (repo *courseRepository) CountCategories(ctx context.Context) (int64, error) {
	count, err := repo.categories.CountDocuments(ctx, bson.M{})
	return count, errors.Wrap(err, "counting categories")
}

// Projects

func (repo *courseRepository) CreateProject(ctx context.Context, prj course.Project) (course.Project, error) {
	if _, err := repo.projects.InsertOne(ctx, prj); err != nil {
		return course.Project{}, errors.Wrap(err, "inserting project")
	}
	return prj, nil
}

func projectQuery(filter course.ProjectFilter) bson.M {
	query := bson.M{}
	if filter.SubjectCategoryID != "" {
		query["subject_category_id"] = filter.SubjectCategoryID
	}
	if filter.AssignedStudent != "" {
		query["assigned_students"] = filter.AssignedStudent
	}
	return query
}

func (repo *courseRepository) FilterProjects(ctx context.Context, filter course.ProjectFilter) ([]course.Project, error) {
	cursor, err := repo.projects.Find(ctx, projectQuery(filter))
	if err != nil {
		return nil, errors.Wrap(err, "querying projects")
	}
	prjs := make([]course.Project, 0)
	if err := cursor.All(ctx, &prjs); err != nil {
		return nil, errors.Wrap(err, "decoding projects")
	}
	return prjs, nil
}

func (repo *courseRepository) GetProjectByID(ctx context.Context, id string) (course.Project, error) {
	var prj course.Project
	if err := repo.projects.FindOne(ctx, bson.M{"id": id}).Decode(&prj); err != nil {
		if err == mongo.ErrNoDocuments {
			return course.Project{}, course.ErrProjectNotFound
		}
		return course.Project{}, errors.Wrap(err, "finding project")
	}
	return prj, nil
}

func (repo *courseRepository) UpdateProject(ctx context.Context, id string, up course.UpdateProject) (course.Project, error) {
	fields := bson.M{}
	if up.Title != nil {
		fields["title"] = *up.Title
	}
	if up.Description != nil {
		fields["description"] = *up.Description
	}
	if up.AssignedStudents != nil {
		fields["assigned_students"] = *up.AssignedStudents
	}
	if len(fields) > 0 {
		res, err := repo.projects.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
		if err != nil {
			return course.Project{}, errors.Wrap(err, "updating project")
		}
		if res.MatchedCount == 0 {
			return course.Project{}, course.ErrProjectNotFound
		}
	}
	return repo.GetProjectByID(ctx, id)
}

func (repo *courseRepository) DeleteProject(ctx context.Context, id string) error {
	res, err := repo.projects.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(err, "deleting project")
	}
	if res.DeletedCount == 0 {
		return course.ErrProjectNotFound
	}
	return nil
}

func (repo *courseRepository) CountProjects(ctx context.Context, filter course.ProjectFilter) (int64, error) {
	count, err := repo.projects.CountDocuments(ctx, projectQuery(filter))
	return count, errors.Wrap(err, "counting projects")
}

// Tasks

func (repo *courseRepository) CreateTask(ctx context.Context, tsk course.Task) (course.Task, error) {
	if _, err := repo.tasks.InsertOne(ctx, tsk); err != nil {
		return course.Task{}, errors.Wrap(err, "inserting task")
	}
	return tsk, nil
}

func taskQuery(filter course.TaskFilter) bson.M {
	query := bson.M{}
	if filter.ProjectID != "" {
		query["project_id"] = filter.ProjectID
	}
	if len(filter.ProjectIDs) > 0 {
		query["project_id"] = bson.M{"$in": filter.ProjectIDs}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.NotStatus != "" {
		query["status"] = bson.M{"$ne": filter.NotStatus}
	}
	return query
}

func (repo *courseRepository) FilterTasks(ctx context.Context, filter course.TaskFilter) ([]course.Task, error) {
	cursor, err := repo.tasks.Find(ctx, taskQuery(filter))
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	tsks := make([]course.Task, 0)
	if err := cursor.All(ctx, &tsks); err != nil {
		return nil, errors.Wrap(err, "decoding tasks")
	}
	return tsks, nil
}

func (repo *courseRepository) GetTaskByID(ctx context.Context, id string) (course.Task, error) {
	var tsk course.Task
	if err := repo.tasks.FindOne(ctx, bson.M{"id": id}).Decode(&tsk); err != nil {
		if err == mongo.ErrNoDocuments {
			return course.Task{}, course.ErrTaskNotFound
		}
		return course.Task{}, errors.Wrap(err, "finding task")
	}
	return tsk, nil
}

func (repo *courseRepository) UpdateTask(ctx context.Context, id string, ut course.UpdateTask) (course.Task, error) {
	fields := bson.M{}
	if ut.Title != nil {
		fields["title"] = *ut.Title
	}
	if ut.Description != nil {
		fields["description"] = *ut.Description
	}
	if ut.Deadline != nil {
		fields["deadline"] = *ut.Deadline
	}
	if ut.Status != nil {
		fields["status"] = *ut.Status
	}
	if len(fields) > 0 {
		res, err := repo.tasks.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
		if err != nil {
			return course.Task{}, errors.Wrap(err, "updating task")
		}
		if res.MatchedCount == 0 {
			return course.Task{}, course.ErrTaskNotFound
		}
	}
	return repo.GetTaskByID(ctx, id)
}

func (repo *courseRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := repo.tasks.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(err, "deleting task")
	}
	if res.DeletedCount == 0 {
		return course.ErrTaskNotFound
	}
	return nil
}

func (repo *courseRepository) CountTasks(ctx context.Context, filter course.TaskFilter) (int64, error) {
	count, err := repo.tasks.CountDocuments(ctx, taskQuery(filter))
	return count, errors.Wrap(err, "counting tasks")
}
