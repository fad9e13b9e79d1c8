package inmemdb

import (
	"context"

	"github.com/buildbytes/lms/core/certificate"
)

type certificateRepository struct {
	db *DB
}

var _ certificate.Repository = (*certificateRepository)(nil) // interface compliance check

func NewCertificateRepository(db *DB) *certificateRepository {
	return &certificateRepository{db: db}
}

func (repo *certificateRepository) CreateCertificate(_ context.Context, cert certificate.Certificate) (certificate.Certificate, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.certificates[cert.ID] = &cert
	return cert, nil
}

func (repo *certificateRepository) GetCertificateByID(_ context.Context, id string) (certificate.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cert, ok := repo.db.certificates[id]; ok {
		return *cert, nil
	}
	return certificate.Certificate{}, certificate.ErrNotFound
}

func (repo *certificateRepository) GetCertificateByStudentAndProject(_ context.Context, studentID, projectID string) (certificate.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, cert := range repo.db.certificates {
		if cert.StudentID == studentID && cert.ProjectID == projectID {
			return *cert, nil
		}
	}
	return certificate.Certificate{}, certificate.ErrNotFound
}

func (repo *certificateRepository) FilterCertificates(_ context.Context, filter certificate.QueryFilter) ([]certificate.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	certs := make([]certificate.Certificate, 0, len(repo.db.certificates))
	for _, cert := range repo.db.certificates {
		if filter.StudentID != "" && cert.StudentID != filter.StudentID {
			continue
		}
		if filter.ProjectID != "" && cert.ProjectID != filter.ProjectID {
			continue
		}
		certs = append(certs, *cert)
	}
	return certs, nil
}
