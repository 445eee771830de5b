package commands

const (
	_etc = "/usr/local/etc/pending-expense"
	_var = "/usr/local/var/pending-expense"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/pending-expense.yaml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
