package repository

import "agrocredit/entities"

type AdvisoryRepository interface {
	CreateDoc(*entities.AdvisoryDoc) error
	BulkInsertChunks([]entities.AdvisoryChunk) error
	ListDocs() ([]entities.AdvisoryDoc, error)
	AllChunks() ([]entities.AdvisoryChunk, error)
	DocsByIDs(ids []uint) (map[uint]entities.AdvisoryDoc, error)
}
