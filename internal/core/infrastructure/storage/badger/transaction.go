package badger

import (
	"errors"
	"fmt"
	"sync/atomic"

	badgerdb "github.com/dgraph-io/badger/v3"

	"github.com/billy1624/champ/pkg/interfaces/infrastructure/storage"
)

var _ storage.BadgerTransaction = (*Transaction)(nil)

const (
	txActive int32 = iota
	txCommitted
	txDiscarded
)

var errTxClosed = errors.New("事务已关闭")

// Transaction 包装 badger.Txn，记录写入次数，无写入时提交退化为丢弃
type Transaction struct {
	txn      *badgerdb.Txn
	state    atomic.Int32
	readOnly bool
	writes   int
}

// Get 键不存在时返回 nil, nil
func (t *Transaction) Get(key []byte) ([]byte, error) {
	item, err := t.lookup(key)
	if err != nil || item == nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("复制键值失败: %w", err)
	}
	return val, nil
}

// Exists 检查键是否存在
func (t *Transaction) Exists(key []byte) (bool, error) {
	item, err := t.lookup(key)
	return item != nil, err
}

func (t *Transaction) lookup(key []byte) (*badgerdb.Item, error) {
	if t.state.Load() != txActive {
		return nil, errTxClosed
	}
	item, err := t.txn.Get(key)
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取键失败: %w", err)
	}
	return item, nil
}

// Set 设置键值对
func (t *Transaction) Set(key, value []byte) error {
	if err := t.writable(); err != nil {
		return err
	}
	if err := t.txn.Set(key, value); err != nil {
		return fmt.Errorf("设置键值失败: %w", err)
	}
	t.writes++
	return nil
}

// Delete 删除指定键
func (t *Transaction) Delete(key []byte) error {
	if err := t.writable(); err != nil {
		return err
	}
	if err := t.txn.Delete(key); err != nil {
		return fmt.Errorf("删除键值失败: %w", err)
	}
	t.writes++
	return nil
}

// IteratePrefix 按键序遍历前缀下的键值
func (t *Transaction) IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error {
	if t.state.Load() != txActive {
		return errTxClosed
	}

	opts := badgerdb.DefaultIteratorOptions
	opts.Prefix = prefix
	it := t.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("复制键值失败: %w", err)
		}
		if !fn(item.KeyCopy(nil), val) {
			break
		}
	}
	return nil
}

// Commit 提交事务；并发冲突时返回 storage.ErrTxnConflict
func (t *Transaction) Commit() error {
	if !t.state.CompareAndSwap(txActive, txCommitted) {
		return errTxClosed
	}
	if t.writes == 0 {
		t.txn.Discard()
		return nil
	}
	if err := t.txn.Commit(); err != nil {
		if errors.Is(err, badgerdb.ErrConflict) {
			return fmt.Errorf("%w: %v", storage.ErrTxnConflict, err)
		}
		return fmt.Errorf("事务提交失败: %w", err)
	}
	return nil
}

// Discard 丢弃未提交的更改，可重复调用
func (t *Transaction) Discard() {
	if t.state.CompareAndSwap(txActive, txDiscarded) {
		t.txn.Discard()
	}
}

func (t *Transaction) writable() error {
	if t.state.Load() != txActive {
		return errTxClosed
	}
	if t.readOnly {
		return fmt.Errorf("只读事务不能写入")
	}
	return nil
}
