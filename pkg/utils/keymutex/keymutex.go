// Package keymutex 提供按键加锁的互斥量集合
//
// 同一个键的调用方互斥，不同键之间互不阻塞。每个键的互斥量带引用计数，
// 最后一个持有者解锁后从表中移除，表的大小只与正在竞争的键数相关。
package keymutex

import (
	"fmt"
	"sync"
)

// Mutex 按键加锁的互斥量集合
type Mutex[K comparable] struct {
	mapMtx  sync.Mutex
	mutexes map[K]*cntMutex
}

// cntMutex 带等待者计数的互斥量
type cntMutex struct {
	cnt int
	sync.Mutex
}

// New 创建按键互斥量集合
func New[K comparable]() *Mutex[K] {
	return &Mutex[K]{
		mutexes: make(map[K]*cntMutex),
	}
}

// Lock 锁定指定键，键已被锁定时阻塞
func (m *Mutex[K]) Lock(key K) {
	m.mapMtx.Lock()
	mtx, ok := m.mutexes[key]
	if ok {
		mtx.cnt++
	} else {
		mtx = &cntMutex{cnt: 1}
		m.mutexes[key] = mtx
	}
	m.mapMtx.Unlock()

	mtx.Lock()
}

// Unlock 解锁指定键；对未锁定的键解锁会 panic
func (m *Mutex[K]) Unlock(key K) {
	m.mapMtx.Lock()
	mtx, ok := m.mutexes[key]
	if !ok {
		m.mapMtx.Unlock()
		panic(fmt.Sprintf("keymutex: 重复解锁 %v", key))
	}

	// 在 mapMtx 内递减，等待者要么已计入 cnt，要么之后会新建互斥量
	mtx.cnt--
	if mtx.cnt == 0 {
		delete(m.mutexes, key)
	}
	m.mapMtx.Unlock()

	mtx.Unlock()
}

// Len 当前被持有或等待的键数量
func (m *Mutex[K]) Len() int {
	m.mapMtx.Lock()
	defer m.mapMtx.Unlock()
	return len(m.mutexes)
}
