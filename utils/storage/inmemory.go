package storage

import (
	"bytes"
	"io"
	"sync"
)

// InMemoryFileStorage インメモリファイルストレージ
type InMemoryFileStorage struct {
	sync.RWMutex
	fileMap map[string][]byte
}

// NewInMemoryFileStorage インメモリのファイルストレージを生成します。主にテスト用
func NewInMemoryFileStorage() *InMemoryFileStorage {
	return &InMemoryFileStorage{
		fileMap: make(map[string][]byte),
	}
}

// SaveByKey srcの内容をkeyで指定されたファイルに書き込みます
func (fs *InMemoryFileStorage) SaveByKey(src io.Reader, key, _ string) error {
	b, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	fs.Lock()
	fs.fileMap[key] = b
	fs.Unlock()
	return nil
}

// OpenFileByKey ファイルを取得します
func (fs *InMemoryFileStorage) OpenFileByKey(key string) (io.ReadCloser, error) {
	fs.RLock()
	f, ok := fs.fileMap[key]
	fs.RUnlock()
	if !ok {
		return nil, ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(f)), nil
}

// DeleteByKey ファイルを削除します
func (fs *InMemoryFileStorage) DeleteByKey(key string) error {
	fs.Lock()
	defer fs.Unlock()
	if _, ok := fs.fileMap[key]; !ok {
		return ErrFileNotFound
	}
	delete(fs.fileMap, key)
	return nil
}

// Len 保存されているファイル数
func (fs *InMemoryFileStorage) Len() int {
	fs.RLock()
	defer fs.RUnlock()
	return len(fs.fileMap)
}
