package models

// StaticPressNamespace prefixes every option row owned by the plugin under
// test. The fixture reset protocol clears and repopulates only this namespace.
const StaticPressNamespace = "StaticPress::"

const (
	OptionStaticURL = "StaticPress::static url"
	OptionStaticDir = "StaticPress::static dir"
	OptionTimeout   = "StaticPress::timeout"

	// ActivePluginsOption holds the PHP-serialized list of active plugins.
	ActivePluginsOption = "active_plugins"
	// DBVersionOption pins the schema version so the upgrade screen does not
	// interrupt the test session.
	DBVersionOption = "db_version"

	// StaticPressActivePlugins is the serialized value activating exactly the
	// plugin under test.
	StaticPressActivePlugins = `a:1:{i:0;s:26:"staticpress2019/plugin.php";}`
	// PinnedDBVersion is the 4.6.1 schema version, accepted by every release
	// line the suite runs against.
	PinnedDBVersion = "38590"
)

// Option is a single wp_options row.
type Option struct {
	Name     string
	Value    string
	Autoload string
}

// FixtureSet is the named collection of option rows a test expects to find
// before it runs. Applied with upsert semantics.
type FixtureSet struct {
	Name    string
	Options []Option
}

// Keys returns the option names in the set, in declaration order.
func (f FixtureSet) Keys() []string {
	keys := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		keys = append(keys, o.Name)
	}
	return keys
}

// StaticPressFixtures is the fixed fixture set the plugin tests run against.
func StaticPressFixtures() FixtureSet {
	return FixtureSet{
		Name: "WpOptionsStaticPress2019",
		Options: []Option{
			{Name: OptionStaticURL, Value: "http://example.org/sub/", Autoload: "yes"},
			{Name: OptionStaticDir, Value: "/var/www/html/wp-content/staticpress/", Autoload: "yes"},
			{Name: OptionTimeout, Value: "20", Autoload: "yes"},
		},
	}
}
