package patch

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// WriteHtpasswd creates the credentials file consumed by the basic-auth
// block, in htpasswd bcrypt format. The file is a prerequisite for the vhost
// patch; without it every request would be rejected.
func WriteHtpasswd(path, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("htpasswd requires both username and password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("%s:%s\n", username, hash)
	return writeFileAtomic(path, []byte(line), 0644)
}
