package native

import "sync"

// Register adds the methods of one native contract to the executor.
type Register func(executor *NativeExecutor)

var registry = struct {
	sync.RWMutex
	contracts map[string]Register
}{
	contracts: map[string]Register{},
}

// AddContract registers the native contract at `addr`. Registering the same
// address again replaces the previous one.
func AddContract(addr string, r Register) {
	registry.Lock()
	defer registry.Unlock()

	registry.contracts[addr] = r
}

func HasContract(addr string) bool {
	_, found := getContract(addr)
	return found
}

func getContract(addr string) (Register, bool) {
	registry.RLock()
	defer registry.RUnlock()

	r, found := registry.contracts[addr]
	return r, found
}
