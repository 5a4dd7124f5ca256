package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	PurineLogs *PurineLogRepository
	KV         *KVRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		PurineLogs: NewPurineLogRepository(database),
		KV:         NewKVRepository(database),
	}
}
