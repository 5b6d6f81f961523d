package config

// AvailableProducts lists the product names accepted as search filters.
func AvailableProducts() []string {
	return []string{
		"Red Hat Enterprise Linux",
		"Red Hat OpenShift Container Platform",
		"Red Hat Virtualization",
		"Red Hat JBoss Enterprise Application Platform",
		"Red Hat Satellite",
		"Red Hat Ansible Automation Platform",
		"Red Hat OpenStack Platform",
		"Red Hat Ceph Storage",
		"Red Hat Gluster Storage",
		"Red Hat Decision Manager",
		"Red Hat Process Automation Manager",
		"Red Hat Data Grid",
		"Red Hat AMQ",
		"Red Hat Fuse",
		"Red Hat 3scale API Management",
		"Red Hat Single Sign-On",
		"Red Hat OpenShift Dedicated",
		"Red Hat OpenShift Online",
		"Red Hat OpenShift Service on AWS",
		"Red Hat Advanced Cluster Management for Kubernetes",
		"Red Hat Advanced Cluster Security for Kubernetes",
		"Red Hat Quay",
		"Red Hat CodeReady Containers",
		"Red Hat CodeReady Workspaces",
		"Red Hat Integration",
		"Red Hat Runtimes",
		"Red Hat Application Services",
		"Red Hat Middleware",
		"Red Hat Insights",
		"Red Hat Satellite Capsule",
		"Red Hat Directory Server",
		"Red Hat Certificate System",
		"Red Hat Identity Management",
		"Red Hat Enterprise Linux for SAP Solutions",
		"Red Hat Enterprise Linux for Real Time",
		"Red Hat Enterprise Linux for IBM Z",
		"Red Hat Enterprise Linux for Power",
		"Red Hat Enterprise Linux for ARM",
		"Red Hat Software Collections",
		"Red Hat Developer Toolset",
	}
}

// DocumentTypes lists the documentKind values accepted as search filters.
func DocumentTypes() []string {
	return []string{
		"Solution",
		"Article",
		"Documentation",
		"Video",
		"Blog",
		"Product Documentation",
		"Knowledgebase",
		"Security Advisory",
		"Bug Fix",
		"Enhancement",
		"Reference Architecture",
		"Technical Brief",
		"White Paper",
		"FAQ",
		"Getting Started",
		"Installation Guide",
		"Administration Guide",
		"Developer Guide",
		"Release Notes",
		"Troubleshooting Guide",
	}
}
