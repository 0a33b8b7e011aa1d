package repo

import (
	"errors"

	"gorm.io/gorm"
)

// first 查不到返回 (nil, nil)
func first[T any](q *gorm.DB) (*T, error) {
	var m T
	err := q.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// affected 写操作是否命中至少一行
func affected(res *gorm.DB) (bool, error) {
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
