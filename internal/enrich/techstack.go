package enrich

// techStack is the technology vocabulary scanned for skill extraction.
// Stored as an ordered slice so extracted skills come out in a stable,
// reproducible order.
var techStack = []string{
	// Programming languages
	"python", "javascript", "java", "c++", "c#", "go", "golang", "rust",
	"ruby", "php", "typescript", "swift", "kotlin", "scala", "r",
	"perl", "elixir", "clojure", "haskell", "dart", "julia",

	// Frontend frameworks and libraries
	"react", "vue", "angular", "svelte", "next.js", "nuxt", "gatsby",
	"html", "css", "sass", "scss", "less", "tailwind", "bootstrap",
	"webpack", "vite", "rollup", "babel",

	// Backend frameworks
	"node.js", "django", "flask", "fastapi", "express", "spring", "spring boot",
	"rails", "ruby on rails", "laravel", "symfony", "asp.net", ".net",
	"gin", "fiber", "actix",

	// Databases
	"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch",
	"cassandra", "dynamodb", "couchdb", "neo4j", "sqlite", "mariadb",
	"oracle", "sql server", "firestore",

	// Cloud and devops
	"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
	"terraform", "ansible", "jenkins", "gitlab ci", "github actions",
	"circleci", "travis ci", "helm", "istio", "prometheus", "grafana",

	// Tools and technologies
	"git", "linux", "bash", "nginx", "apache", "graphql", "rest api",
	"grpc", "kafka", "rabbitmq", "celery", "spark", "hadoop", "airflow",

	// Mobile
	"react native", "flutter", "ios", "android", "xamarin",

	// AI/ML and data science
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"machine learning", "deep learning", "nlp", "computer vision",

	// Practices and protocols
	"microservices", "serverless", "ci/cd", "agile", "scrum", "tdd",
	"rest", "soap", "oauth", "jwt", "websockets",
}
