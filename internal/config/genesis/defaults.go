package genesis

// defaultInitialBalance 未列入 allotments 的新账户创世余额
// 为 0 时新账户只能通过 Collect 获得余额
const defaultInitialBalance uint64 = 0
