package patch_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/patch"
)

const sampleVHost = `<VirtualHost *:80>
	ServerAdmin webmaster@localhost
	DocumentRoot /var/www/html

	ErrorLog ${APACHE_LOG_DIR}/error.log
	CustomLog ${APACHE_LOG_DIR}/access.log combined

	#Include conf-available/serve-cgi-bin.conf
</VirtualHost>
`

var _ = Describe("PatchVHost", func() {
	var vhostPath string

	BeforeEach(func() {
		vhostPath = filepath.Join(GinkgoT().TempDir(), "000-default.conf")
		Expect(os.WriteFile(vhostPath, []byte(sampleVHost), 0644)).To(Succeed())
	})

	It("should inject the auth block after the anchor", func() {
		err := patch.PatchVHost(vhostPath, "Restricted Content", "/etc/apache2/.htpasswd")
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(vhostPath)
		Expect(err).NotTo(HaveOccurred())
		content := string(data)

		Expect(content).To(ContainSubstring("AuthType Basic"))
		Expect(content).To(ContainSubstring(`AuthName "Restricted Content"`))
		Expect(content).To(ContainSubstring("AuthUserFile /etc/apache2/.htpasswd"))
		Expect(content).To(ContainSubstring("Require valid-user"))

		// The anchor line itself survives, directly above the block.
		anchorPos := strings.Index(content, "#Include conf-available/serve-cgi-bin.conf")
		authPos := strings.Index(content, "AuthType Basic")
		Expect(anchorPos).To(BeNumerically(">=", 0))
		Expect(authPos).To(BeNumerically(">", anchorPos))
	})

	// Given an already patched vhost
	// When we patch it a second time
	// Then the file is byte-identical to the once-patched state
	It("should be idempotent", func() {
		Expect(patch.PatchVHost(vhostPath, "Restricted Content", "/etc/apache2/.htpasswd")).To(Succeed())
		once, err := os.ReadFile(vhostPath)
		Expect(err).NotTo(HaveOccurred())

		Expect(patch.PatchVHost(vhostPath, "Restricted Content", "/etc/apache2/.htpasswd")).To(Succeed())
		twice, err := os.ReadFile(vhostPath)
		Expect(err).NotTo(HaveOccurred())

		Expect(twice).To(Equal(once))
		Expect(strings.Count(string(twice), "AuthType Basic")).To(Equal(1))
	})

	It("should fail when the anchor is missing", func() {
		Expect(os.WriteFile(vhostPath, []byte("<VirtualHost *:80>\n</VirtualHost>\n"), 0644)).To(Succeed())
		err := patch.PatchVHost(vhostPath, "Restricted Content", "/etc/apache2/.htpasswd")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("anchor"))
	})

	It("should fail when the vhost file does not exist", func() {
		err := patch.PatchVHost(filepath.Join(GinkgoT().TempDir(), "missing.conf"), "r", "/f")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("PatchServerConf", func() {
	var confPath string

	BeforeEach(func() {
		confPath = filepath.Join(GinkgoT().TempDir(), "apache2.conf")
		Expect(os.WriteFile(confPath, []byte("ServerRoot \"/etc/apache2\"\n"), 0644)).To(Succeed())
	})

	It("should append the authz module load directive exactly once", func() {
		Expect(patch.PatchServerConf(confPath)).To(Succeed())
		once, err := os.ReadFile(confPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(once)).To(ContainSubstring("LoadModule authz_core_module"))

		Expect(patch.PatchServerConf(confPath)).To(Succeed())
		twice, err := os.ReadFile(confPath)
		Expect(err).NotTo(HaveOccurred())

		Expect(twice).To(Equal(once))
		Expect(strings.Count(string(twice), "LoadModule authz_core_module")).To(Equal(1))
	})
})

var _ = Describe("WriteHtpasswd", func() {
	It("should write a verifiable bcrypt entry", func() {
		path := filepath.Join(GinkgoT().TempDir(), ".htpasswd")
		Expect(patch.WriteHtpasswd(path, "authuser", "authpassword")).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		line := strings.TrimSuffix(string(data), "\n")
		user, hash, found := strings.Cut(line, ":")
		Expect(found).To(BeTrue())
		Expect(user).To(Equal("authuser"))
		Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("authpassword"))).To(Succeed())
	})

	It("should reject empty credentials", func() {
		path := filepath.Join(GinkgoT().TempDir(), ".htpasswd")
		Expect(patch.WriteHtpasswd(path, "", "authpassword")).To(HaveOccurred())
		Expect(patch.WriteHtpasswd(path, "authuser", "")).To(HaveOccurred())
	})
})
