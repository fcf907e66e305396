package backup

import (
	"os"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/projcal/internal/constants"
)

var processesFunc = ps.Processes

// OtherInstances returns the pids of other running projcal processes. Restoring
// while one of them holds the database open can corrupt it.
func OtherInstances() ([]int, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, err
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		exe := strings.TrimSuffix(p.Executable(), ".exe")
		if exe == constants.AppName {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
